package dto

import (
	"time"

	"ancestral-travel-be/internal/entity"

	"github.com/google/uuid"
)

type UploadAncestryResponse struct {
	Id           uuid.UUID               `json:"id"`
	TestProvider string                  `json:"test_provider"`
	Confidence   float64                 `json:"confidence"`
	Ancestry     []entity.AncestryRecord `json:"ancestry"`
	EthnicGroups []string                `json:"ethnic_groups"`
	Warnings     []string                `json:"warnings,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}
