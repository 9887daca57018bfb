package entity

import (
	"time"

	"github.com/google/uuid"
)

// Ancestry test providers recognized by the parser.
const (
	TestProviderGenera     = "genera"
	TestProviderMyHeritage = "myheritage"
	TestProvider23andMe    = "23andme"
	TestProviderUnknown    = "unknown"
)

// AncestryRecord is one region/percentage/countries triple extracted from a
// report. Countries is never empty: unmapped regions fall back to the region
// name itself.
type AncestryRecord struct {
	Region     string   `json:"region"`
	Percentage float64  `json:"percentage"`
	Countries  []string `json:"countries"`
}

// AncestryProfile is the structured result of parsing a DNA ancestry report.
// Immutable once created; a later upload for the same session supersedes it.
type AncestryProfile struct {
	Ancestry     []AncestryRecord `json:"ancestry"`
	EthnicGroups []string         `json:"ethnic_groups"`
	TestProvider string           `json:"test_provider"`
	Confidence   float64          `json:"confidence"`
}

// AncestryUpload is one persisted upload, keyed by (user, session).
type AncestryUpload struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	ChatSessionId uuid.UUID
	Profile       AncestryProfile
	Warnings      []string
	CreatedAt     time.Time
}
