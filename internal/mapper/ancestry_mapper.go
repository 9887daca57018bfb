package mapper

import (
	"encoding/json"

	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/model"
)

type AncestryMapper struct{}

func NewAncestryMapper() *AncestryMapper {
	return &AncestryMapper{}
}

func (m *AncestryMapper) ToEntity(u *model.AncestryUpload) *entity.AncestryUpload {
	if u == nil {
		return nil
	}

	profile := entity.AncestryProfile{
		TestProvider: u.TestProvider,
		Confidence:   u.Confidence,
	}
	if len(u.ParsedData) > 0 {
		// ParsedData holds the full profile; provider and confidence columns
		// are denormalized copies for querying.
		_ = json.Unmarshal(u.ParsedData, &profile)
	}

	var warnings []string
	if len(u.Warnings) > 0 {
		_ = json.Unmarshal(u.Warnings, &warnings)
	}

	return &entity.AncestryUpload{
		Id:            u.Id,
		UserId:        u.UserId,
		ChatSessionId: u.ChatSessionId,
		Profile:       profile,
		Warnings:      warnings,
		CreatedAt:     u.CreatedAt,
	}
}

func (m *AncestryMapper) ToModel(u *entity.AncestryUpload) (*model.AncestryUpload, error) {
	if u == nil {
		return nil, nil
	}

	parsed, err := json.Marshal(u.Profile)
	if err != nil {
		return nil, err
	}

	out := &model.AncestryUpload{
		Id:            u.Id,
		UserId:        u.UserId,
		ChatSessionId: u.ChatSessionId,
		TestProvider:  u.Profile.TestProvider,
		Confidence:    u.Profile.Confidence,
		ParsedData:    parsed,
		CreatedAt:     u.CreatedAt,
	}
	if len(u.Warnings) > 0 {
		if raw, err := json.Marshal(u.Warnings); err == nil {
			out.Warnings = raw
		}
	}
	return out, nil
}
