package implementation

import (
	"context"
	"errors"
	"time"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/mapper"
	"ancestral-travel-be/internal/model"
	"ancestral-travel-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func (r *SubscriptionRepositoryImpl) FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.UserSubscription, error) {
	var m model.UserSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND current_period_end > ?",
			userId, string(entity.SubscriptionStatusActive), time.Now()).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
