package contract

import (
	"context"
	"time"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindRecentBySession returns the most recent limit messages for a
	// (user, session) pair in ascending timestamp order.
	FindRecentBySession(ctx context.Context, userId, sessionId uuid.UUID, limit int) ([]*entity.ChatMessage, error)
	// CountUserMessagesSince counts user-role messages authored at or after
	// the given instant. Quota checks and context assembly share this query.
	CountUserMessagesSince(ctx context.Context, userId uuid.UUID, since time.Time) (int64, error)
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
}
