package mapper

import (
	"encoding/json"
	"time"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var prefs entity.UserPreferences
	if len(u.Preferences) > 0 {
		_ = json.Unmarshal(u.Preferences, &prefs)
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:          u.Id,
		Email:       u.Email,
		FullName:    u.FullName,
		Preferences: prefs,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	out := &model.User{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
	if raw, err := json.Marshal(u.Preferences); err == nil {
		out.Preferences = raw
	}
	if u.UpdatedAt != nil {
		out.UpdatedAt = *u.UpdatedAt
	}
	return out
}
