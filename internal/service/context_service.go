package service

import (
	"context"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/memory"
	"ancestral-travel-be/internal/repository/specification"
	"ancestral-travel-be/internal/repository/unitofwork"
	"ancestral-travel-be/pkg/agent"
	"ancestral-travel-be/pkg/ancestry"
	"ancestral-travel-be/pkg/travel/intent"

	"github.com/google/uuid"
)

// ConversationContext is the assembled per-session state the orchestrator
// builds prompts from.
type ConversationContext struct {
	SessionId    uuid.UUID
	UserId       uuid.UUID
	AgentMode    string
	Profile      *ancestry.Profile
	Preferences  intent.Preferences
	Messages     []agent.Message
	MessageCount int
	DnaProcessed bool
	Usage        dto.UsageSnapshot
}

type IContextService interface {
	GetContext(ctx context.Context, userId, sessionId uuid.UUID) (*ConversationContext, error)
	CanSendMessage(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheck, error)
	MergePreferences(ctx context.Context, userId uuid.UUID, extracted intent.Preferences) error
}

type contextService struct {
	uowFactory   unitofwork.RepositoryFactory
	profileCache *memory.ProfileCache
	logger       logger.ILogger
}

func NewContextService(
	uowFactory unitofwork.RepositoryFactory,
	profileCache *memory.ProfileCache,
	log logger.ILogger,
) IContextService {
	return &contextService{
		uowFactory:   uowFactory,
		profileCache: profileCache,
		logger:       log,
	}
}

// startOfToday is the local-midnight boundary both the quota check and the
// context usage counter share.
func startOfToday(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (c *contextService) GetContext(ctx context.Context, userId, sessionId uuid.UUID) (*ConversationContext, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, userId, sessionId, constant.MaxContextMessages)
	if err != nil {
		return nil, err
	}

	messageCount, err := uow.ChatMessageRepository().Count(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}

	upload, err := c.latestUpload(ctx, uow, userId, sessionId)
	if err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}

	usage, err := c.usageSnapshot(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	convCtx := &ConversationContext{
		SessionId:    sessionId,
		UserId:       userId,
		AgentMode:    agent.ModeTraditionalPlanner,
		MessageCount: int(messageCount),
		Usage:        *usage,
	}

	if upload != nil {
		convCtx.Profile = toAgentProfile(upload.Profile)
		convCtx.AgentMode = agent.ModeDNASpecialist
		convCtx.DnaProcessed = true
	}

	if user != nil {
		convCtx.Preferences = toAgentPreferences(user.Preferences)
	}

	for _, msg := range messages {
		convCtx.Messages = append(convCtx.Messages, agent.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	return convCtx, nil
}

func (c *contextService) CanSendMessage(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheck, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	usage, err := c.usageSnapshot(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	if !usage.IsFreeTier {
		return &dto.QuotaCheck{Allowed: true, Usage: *usage}, nil
	}

	if usage.MessagesSentToday >= usage.DailyLimit {
		return &dto.QuotaCheck{
			Allowed: false,
			Reason:  constant.MsgDailyLimitReached,
			Usage:   *usage,
		}, nil
	}

	return &dto.QuotaCheck{Allowed: true, Usage: *usage}, nil
}

// MergePreferences fills in preference fields the user row does not have yet.
// Already-learned fields are never overwritten by later messages.
func (c *contextService) MergePreferences(ctx context.Context, userId uuid.UUID, extracted intent.Preferences) error {
	if extracted.IsEmpty() {
		return nil
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	changed := false
	prefs := &user.Preferences

	if prefs.Budget == "" && extracted.Budget != "" {
		prefs.Budget = extracted.Budget
		changed = true
	}
	if prefs.TravelStyle == "" && extracted.TravelStyle != "" {
		prefs.TravelStyle = extracted.TravelStyle
		changed = true
	}
	if len(prefs.Interests) == 0 && len(extracted.Interests) > 0 {
		prefs.Interests = extracted.Interests
		changed = true
	}
	if len(prefs.PreviousDestinations) == 0 && len(extracted.PreviousDestinations) > 0 {
		prefs.PreviousDestinations = extracted.PreviousDestinations
		changed = true
	}

	if !changed {
		return nil
	}

	return uow.UserRepository().Update(ctx, user)
}

func (c *contextService) usageSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*dto.UsageSnapshot, error) {
	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	todayCount, err := uow.ChatMessageRepository().CountUserMessagesSince(ctx, userId, startOfToday(time.Now()))
	if err != nil {
		return nil, err
	}

	remaining := constant.FreeTierDailyLimit - int(todayCount)
	if remaining < 0 {
		remaining = 0
	}

	return &dto.UsageSnapshot{
		MessagesSentToday: int(todayCount),
		IsFreeTier:        sub == nil,
		DailyLimit:        constant.FreeTierDailyLimit,
		RemainingMessages: remaining,
	}, nil
}

func (c *contextService) latestUpload(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.AncestryUpload, error) {
	if cached, found := c.profileCache.Get(userId, sessionId); found {
		return cached, nil
	}

	upload, err := uow.AncestryRepository().FindLatest(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if upload != nil {
		c.profileCache.Save(upload)
	}
	return upload, nil
}

// --- entity <-> pkg type mapping ---

func toAgentProfile(p entity.AncestryProfile) *ancestry.Profile {
	profile := &ancestry.Profile{
		EthnicGroups: p.EthnicGroups,
		TestProvider: p.TestProvider,
		Confidence:   p.Confidence,
	}
	for _, rec := range p.Ancestry {
		profile.Ancestry = append(profile.Ancestry, ancestry.Record{
			Region:     rec.Region,
			Percentage: rec.Percentage,
			Countries:  rec.Countries,
		})
	}
	return profile
}

func toEntityProfile(p *ancestry.Profile) entity.AncestryProfile {
	profile := entity.AncestryProfile{
		EthnicGroups: p.EthnicGroups,
		TestProvider: p.TestProvider,
		Confidence:   p.Confidence,
	}
	for _, rec := range p.Ancestry {
		profile.Ancestry = append(profile.Ancestry, entity.AncestryRecord{
			Region:     rec.Region,
			Percentage: rec.Percentage,
			Countries:  rec.Countries,
		})
	}
	return profile
}

func toAgentPreferences(p entity.UserPreferences) intent.Preferences {
	return intent.Preferences{
		Budget:               p.Budget,
		TravelStyle:          p.TravelStyle,
		Interests:            p.Interests,
		PreviousDestinations: p.PreviousDestinations,
	}
}
