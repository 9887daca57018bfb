package implementation

import (
	"context"
	"errors"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/mapper"
	"ancestral-travel-be/internal/model"
	"ancestral-travel-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AncestryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AncestryMapper
}

func NewAncestryRepository(db *gorm.DB) contract.AncestryRepository {
	return &AncestryRepositoryImpl{
		db:     db,
		mapper: mapper.NewAncestryMapper(),
	}
}

func (r *AncestryRepositoryImpl) Create(ctx context.Context, upload *entity.AncestryUpload) error {
	m, err := r.mapper.ToModel(upload)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*upload = *r.mapper.ToEntity(m)
	return nil
}

func (r *AncestryRepositoryImpl) FindLatest(ctx context.Context, userId, sessionId uuid.UUID) (*entity.AncestryUpload, error) {
	var m model.AncestryUpload
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND chat_session_id = ?", userId, sessionId).
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

func (r *AncestryRepositoryImpl) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).Delete(&model.AncestryUpload{}).Error
}
