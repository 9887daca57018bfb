package contract

import (
	"context"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/repository/specification"
)

type UserRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
