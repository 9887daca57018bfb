package service

import (
	"context"
	"errors"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/specification"
	"ancestral-travel-be/internal/repository/unitofwork"
	"ancestral-travel-be/pkg/agent"
	"ancestral-travel-be/pkg/events"
	"ancestral-travel-be/pkg/llm"
	"ancestral-travel-be/pkg/travel/intent"

	"github.com/google/uuid"
)

const defaultSystemPrompt = "Você é um assistente especializado em planejamento de viagens."

type IAgentService interface {
	SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	SendMessageStream(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, onDelta func(delta string) error) (*dto.SendChatResponse, error)
}

// AgentOptions is deployment policy for the orchestrator.
type AgentOptions struct {
	// FallbackModel, when set, is tried once after the primary model fails
	// with a not-found or quota error.
	FallbackModel string
	Temperature   float64
	MaxTokens     int
}

type agentService struct {
	uowFactory       unitofwork.RepositoryFactory
	contextService   IContextService
	llmProvider      llm.LLMProvider
	publisherService IPublisherService
	logger           logger.ILogger
	opts             AgentOptions
}

func NewAgentService(
	uowFactory unitofwork.RepositoryFactory,
	contextService IContextService,
	llmProvider llm.LLMProvider,
	publisherService IPublisherService,
	log logger.ILogger,
	opts AgentOptions,
) IAgentService {
	if opts.Temperature == 0 {
		opts.Temperature = 0.7
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 2000
	}
	return &agentService{
		uowFactory:       uowFactory,
		contextService:   contextService,
		llmProvider:      llmProvider,
		publisherService: publisherService,
		logger:           log,
		opts:             opts,
	}
}

// turn carries everything prepared before the completion call.
type turn struct {
	convCtx *ConversationContext
	intent  intent.Result
	prompt  string
}

func (a *agentService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	t, err := a.prepareTurn(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	completion, err := a.complete(ctx, t.prompt, nil)
	if err != nil {
		return nil, err
	}

	return a.finishTurn(ctx, userId, req, t, completion, time.Since(startedAt)), nil
}

func (a *agentService) SendMessageStream(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, onDelta func(delta string) error) (*dto.SendChatResponse, error) {
	t, err := a.prepareTurn(ctx, userId, req)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	completion, err := a.complete(ctx, t.prompt, onDelta)
	if err != nil {
		return nil, err
	}

	return a.finishTurn(ctx, userId, req, t, completion, time.Since(startedAt)), nil
}

// prepareTurn validates the message, enforces the quota (atomically with the
// user-turn insert), assembles the context and builds the prompt.
func (a *agentService) prepareTurn(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*turn, error) {
	if req.Message == "" {
		return nil, &ValidationError{Msg: constant.MsgMessageRequired}
	}
	if len([]rune(req.Message)) > constant.MaxMessageLength {
		return nil, &ValidationError{Msg: constant.MsgMessageTooLong}
	}

	quota, err := a.contextService.CanSendMessage(ctx, userId)
	if err != nil {
		return nil, err
	}
	if !quota.Allowed {
		return nil, &dto.LimitExceededError{Reason: quota.Reason, Usage: quota.Usage}
	}

	convCtx, err := a.contextService.GetContext(ctx, userId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	intentResult := intent.Classify(req.Message)
	extracted := intent.ExtractPreferences(req.Message)
	if err := a.contextService.MergePreferences(ctx, userId, extracted); err != nil {
		a.logger.Warn("agent", "preference merge failed", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId.String(),
		})
	}
	convCtx.Preferences = mergedView(convCtx.Preferences, extracted)

	// The user turn is inserted in the same transaction as the quota
	// re-check, so two concurrent requests cannot both pass at the limit.
	if err := a.consumeQuota(ctx, userId, req, convCtx); err != nil {
		return nil, err
	}

	prompt := agent.BuildPrompt(agent.Context{
		AgentMode:   convCtx.AgentMode,
		Profile:     convCtx.Profile,
		Preferences: convCtx.Preferences,
		Messages:    convCtx.Messages,
	}, req.Message)

	if err := agent.ValidatePrompt(prompt); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}

	return &turn{
		convCtx: convCtx,
		intent:  intentResult,
		prompt:  agent.OptimizePrompt(prompt),
	}, nil
}

func (a *agentService) consumeQuota(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, convCtx *ConversationContext) error {
	uow := a.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if convCtx.Usage.IsFreeTier {
		// Lock the user row first so two concurrent turns at the limit
		// cannot both pass the re-count under read committed.
		if _, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId}, specification.ForUpdate{}); err != nil {
			return err
		}

		todayCount, err := uow.ChatMessageRepository().CountUserMessagesSince(ctx, userId, startOfToday(time.Now()))
		if err != nil {
			return err
		}
		if int(todayCount) >= constant.FreeTierDailyLimit {
			usage := convCtx.Usage
			usage.MessagesSentToday = int(todayCount)
			usage.RemainingMessages = 0
			return &dto.LimitExceededError{Reason: constant.MsgDailyLimitReached, Usage: usage}
		}
	}

	userTurn := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: req.ChatSessionId,
		UserId:        userId,
		Role:          constant.ChatMessageRoleUser,
		Content:       req.Message,
		AgentMode:     convCtx.AgentMode,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, &userTurn); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	convCtx.MessageCount++
	if convCtx.Usage.IsFreeTier {
		convCtx.Usage.MessagesSentToday++
		if convCtx.Usage.RemainingMessages > 0 {
			convCtx.Usage.RemainingMessages--
		}
	}
	return nil
}

// complete calls the model, optionally retrying once on the fallback model
// when the primary reports not-found or quota exhaustion.
func (a *agentService) complete(ctx context.Context, prompt string, onDelta func(delta string) error) (*llm.Completion, error) {
	history := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: defaultSystemPrompt},
		{Role: constant.ChatMessageRoleUser, Content: prompt},
	}
	baseOpts := []llm.Option{
		llm.WithTemperature(a.opts.Temperature),
		llm.WithMaxTokens(a.opts.MaxTokens),
	}

	completion, err := a.call(ctx, history, onDelta, baseOpts...)
	if err == nil {
		return completion, nil
	}

	var llmErr *llm.Error
	if a.opts.FallbackModel != "" && errors.As(err, &llmErr) &&
		(llmErr.Kind == llm.ErrKindNotFound || llmErr.Kind == llm.ErrKindQuota) {
		a.logger.Warn("agent", "primary model failed, retrying on fallback", map[string]interface{}{
			"error":    llmErr.Error(),
			"fallback": a.opts.FallbackModel,
		})
		return a.call(ctx, history, onDelta, append(baseOpts, llm.WithModel(a.opts.FallbackModel))...)
	}

	return nil, err
}

func (a *agentService) call(ctx context.Context, history []llm.Message, onDelta func(delta string) error, opts ...llm.Option) (*llm.Completion, error) {
	if onDelta != nil {
		return a.llmProvider.CompleteStream(ctx, history, onDelta, opts...)
	}
	return a.llmProvider.Complete(ctx, history, opts...)
}

// finishTurn persists the assistant reply best-effort and assembles the
// response metadata. Persistence failures never fail the turn: the generated
// content is still returned.
func (a *agentService) finishTurn(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, t *turn, completion *llm.Completion, elapsed time.Duration) *dto.SendChatResponse {
	responseTimeMs := elapsed.Milliseconds()

	assistantTurn := entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: req.ChatSessionId,
		UserId:        userId,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       completion.Content,
		AgentMode:     t.convCtx.AgentMode,
		Metadata: &entity.MessageMetadata{
			TokensUsed:     completion.Usage.TotalTokens,
			ResponseTimeMs: int(responseTimeMs),
		},
		CreatedAt: time.Now(),
	}

	uow := a.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, &assistantTurn); err != nil {
		a.logger.Error("agent", "failed to persist assistant turn", map[string]interface{}{
			"error":           err.Error(),
			"chat_session_id": req.ChatSessionId.String(),
		})
	} else {
		t.convCtx.MessageCount++
	}

	_ = a.publisherService.PublishEvent(ctx, events.NewChatTurnCompleted(
		userId, req.ChatSessionId,
		t.convCtx.AgentMode, t.intent.Intent,
		completion.Usage.TotalTokens, responseTimeMs,
	))

	followUps := agent.FollowUpQuestions(agent.Context{
		AgentMode:   t.convCtx.AgentMode,
		Profile:     t.convCtx.Profile,
		Preferences: t.convCtx.Preferences,
	})

	return &dto.SendChatResponse{
		Content: completion.Content,
		Context: &dto.AgentContext{
			AgentMode:         t.convCtx.AgentMode,
			MessageCount:      t.convCtx.MessageCount,
			RemainingMessages: t.convCtx.Usage.RemainingMessages,
			DnaProcessed:      t.convCtx.DnaProcessed,
			Intent:            t.intent.Intent,
			FollowUpQuestions: followUps,
		},
		Usage: &dto.AgentUsage{
			TokensUsed:     completion.Usage.TotalTokens,
			ResponseTimeMs: int(responseTimeMs),
		},
	}
}

// mergedView overlays freshly extracted preferences on the stored ones for
// this turn's prompt, without waiting on the persisted merge.
func mergedView(stored, extracted intent.Preferences) intent.Preferences {
	if stored.Budget == "" {
		stored.Budget = extracted.Budget
	}
	if stored.TravelStyle == "" {
		stored.TravelStyle = extracted.TravelStyle
	}
	if len(stored.Interests) == 0 {
		stored.Interests = extracted.Interests
	}
	if len(stored.PreviousDestinations) == 0 {
		stored.PreviousDestinations = extracted.PreviousDestinations
	}
	return stored
}
