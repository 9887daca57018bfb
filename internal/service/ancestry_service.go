package service

import (
	"context"
	"errors"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/memory"
	"ancestral-travel-be/internal/repository/specification"
	"ancestral-travel-be/internal/repository/unitofwork"
	"ancestral-travel-be/pkg/ancestry"
	"ancestral-travel-be/pkg/events"
	"ancestral-travel-be/pkg/extract"

	"github.com/google/uuid"
)

type UploadAncestryInput struct {
	ChatSessionId uuid.UUID
	Filename      string
	MimeType      string
	Data          []byte
}

type IAncestryService interface {
	Upload(ctx context.Context, userId uuid.UUID, input *UploadAncestryInput) (*dto.UploadAncestryResponse, error)
}

type ancestryService struct {
	uowFactory       unitofwork.RepositoryFactory
	extractor        extract.TextExtractor
	profileCache     *memory.ProfileCache
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAncestryService(
	uowFactory unitofwork.RepositoryFactory,
	extractor extract.TextExtractor,
	profileCache *memory.ProfileCache,
	publisherService IPublisherService,
	log logger.ILogger,
) IAncestryService {
	return &ancestryService{
		uowFactory:       uowFactory,
		extractor:        extractor,
		profileCache:     profileCache,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *ancestryService) Upload(ctx context.Context, userId uuid.UUID, input *UploadAncestryInput) (*dto.UploadAncestryResponse, error) {
	if input.MimeType != "application/pdf" {
		return nil, &ValidationError{Msg: constant.MsgUnsupportedFormat}
	}
	if len(input.Data) > constant.MaxUploadSizeBytes {
		return nil, &ValidationError{Msg: constant.MsgFileTooLarge}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: input.ChatSessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	text, err := s.extractor.ExtractPlainText(ctx, input.Filename, input.MimeType, input.Data)
	if err != nil {
		s.logger.Error("ancestry", "text extraction failed", map[string]interface{}{
			"error":    err.Error(),
			"filename": input.Filename,
		})
		return nil, &ParseError{Msg: constant.MsgAncestryFailed}
	}

	result, err := ancestry.Parse(text)
	if err != nil {
		if errors.Is(err, ancestry.ErrTextTooShort) || errors.Is(err, ancestry.ErrNoAncestryData) {
			return nil, &ParseError{Msg: err.Error()}
		}
		return nil, err
	}

	upload := entity.AncestryUpload{
		Id:            uuid.New(),
		UserId:        userId,
		ChatSessionId: input.ChatSessionId,
		Profile:       toEntityProfile(result.Profile),
		Warnings:      result.Warnings,
		CreatedAt:     time.Now(),
	}

	if err := uow.AncestryRepository().Create(ctx, &upload); err != nil {
		return nil, err
	}

	// Newest upload supersedes whatever was cached for the pair
	s.profileCache.Invalidate(userId, input.ChatSessionId)
	s.profileCache.Save(&upload)

	_ = s.publisherService.PublishEvent(ctx, events.NewAncestryProcessed(
		userId, input.ChatSessionId,
		result.Profile.TestProvider, result.Profile.Confidence, len(result.Profile.Ancestry),
	))

	s.logger.Info("ancestry", "ancestry profile processed", map[string]interface{}{
		"user_id":         userId.String(),
		"chat_session_id": input.ChatSessionId.String(),
		"provider":        result.Profile.TestProvider,
		"confidence":      result.Profile.Confidence,
		"regions":         len(result.Profile.Ancestry),
	})

	return &dto.UploadAncestryResponse{
		Id:           upload.Id,
		TestProvider: upload.Profile.TestProvider,
		Confidence:   upload.Profile.Confidence,
		Ancestry:     upload.Profile.Ancestry,
		EthnicGroups: upload.Profile.EthnicGroups,
		Warnings:     upload.Warnings,
		CreatedAt:    upload.CreatedAt,
	}, nil
}
