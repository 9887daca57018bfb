package contract

import (
	"context"

	"ancestral-travel-be/internal/entity"

	"github.com/google/uuid"
)

type AncestryRepository interface {
	Create(ctx context.Context, upload *entity.AncestryUpload) error
	// FindLatest returns the most recent upload for a (user, session) pair,
	// or nil if none exists. Later uploads supersede earlier ones.
	FindLatest(ctx context.Context, userId, sessionId uuid.UUID) (*entity.AncestryUpload, error)
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
}
