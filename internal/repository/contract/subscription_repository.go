package contract

import (
	"context"

	"ancestral-travel-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// FindActiveByUser returns the user's active subscription, or nil when
	// the user is on the free tier.
	FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error)
}
