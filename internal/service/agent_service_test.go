package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/memory"
	"ancestral-travel-be/internal/repository/specification"
	"ancestral-travel-be/pkg/agent"
	"ancestral-travel-be/pkg/llm"
	"ancestral-travel-be/pkg/travel/intent"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider records calls and plays back scripted results.
type fakeProvider struct {
	completions []fakeCall
	calls       []llm.Options
}

type fakeCall struct {
	completion *llm.Completion
	err        error
}

func (f *fakeProvider) record(opts ...llm.Option) llm.Options {
	options := llm.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	f.calls = append(f.calls, options)
	return options
}

func (f *fakeProvider) next() fakeCall {
	if len(f.completions) == 0 {
		return fakeCall{completion: &llm.Completion{Content: "ok"}}
	}
	call := f.completions[0]
	if len(f.completions) > 1 {
		f.completions = f.completions[1:]
	}
	return call
}

func (f *fakeProvider) Complete(ctx context.Context, history []llm.Message, opts ...llm.Option) (*llm.Completion, error) {
	f.record(opts...)
	call := f.next()
	return call.completion, call.err
}

func (f *fakeProvider) CompleteStream(ctx context.Context, history []llm.Message, onDelta func(delta string) error, opts ...llm.Option) (*llm.Completion, error) {
	f.record(opts...)
	call := f.next()
	if call.err != nil {
		return nil, call.err
	}
	if err := onDelta(call.completion.Content); err != nil {
		return nil, err
	}
	return call.completion, nil
}

type fixture struct {
	store      *memory.Store
	provider   *fakeProvider
	agentSvc   IAgentService
	contextSvc IContextService
	userId     uuid.UUID
	sessionId  uuid.UUID
}

func newFixture(t *testing.T, opts AgentOptions) *fixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	cache := memory.NewProfileCache()
	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService(pubSub, "chat.events")

	contextSvc := NewContextService(store, cache, log)
	provider := &fakeProvider{}
	agentSvc := NewAgentService(store, contextSvc, provider, publisher, log, opts)

	userId := uuid.New()
	store.SeedUser(entity.User{Id: userId, Email: "viajante@example.com", CreatedAt: time.Now()})

	sessionId := uuid.New()
	uow := store.NewUnitOfWork(ctx)
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		UserId:    userId,
		Title:     "Planejamento",
		CreatedAt: time.Now(),
	}))

	return &fixture{
		store:      store,
		provider:   provider,
		agentSvc:   agentSvc,
		contextSvc: contextSvc,
		userId:     userId,
		sessionId:  sessionId,
	}
}

func (f *fixture) seedUserMessagesToday(t *testing.T, n int) {
	t.Helper()
	ctx := context.Background()
	uow := f.store.NewUnitOfWork(ctx)
	for i := 0; i < n; i++ {
		require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
			Id:            uuid.New(),
			ChatSessionId: f.sessionId,
			UserId:        f.userId,
			Role:          constant.ChatMessageRoleUser,
			Content:       fmt.Sprintf("mensagem %d", i),
			AgentMode:     agent.ModeTraditionalPlanner,
			CreatedAt:     time.Now(),
		}))
	}
}

func TestSendMessagePersistsBothTurns(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	f.provider.completions = []fakeCall{{completion: &llm.Completion{
		Content: "Aqui está seu roteiro!",
		Usage:   llm.Usage{TotalTokens: 321},
	}}}

	res, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "Quero planejar uma viagem para Portugal",
	})
	require.NoError(t, err)

	assert.Equal(t, "Aqui está seu roteiro!", res.Content)
	assert.Equal(t, agent.ModeTraditionalPlanner, res.Context.AgentMode)
	assert.Equal(t, intent.IntentPlanning, res.Context.Intent)
	assert.False(t, res.Context.DnaProcessed)
	assert.Equal(t, 321, res.Usage.TokensUsed)
	assert.NotEmpty(t, res.Context.FollowUpQuestions)
	assert.LessOrEqual(t, len(res.Context.FollowUpQuestions), 3)

	ctx := context.Background()
	uow := f.store.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, f.userId, f.sessionId, 20)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, messages[1].Role)
	require.NotNil(t, messages[1].Metadata)
	assert.Equal(t, 321, messages[1].Metadata.TokensUsed)
}

func TestSendMessageQuotaBoundary(t *testing.T) {
	f := newFixture(t, AgentOptions{})

	// one below the limit still goes through
	f.seedUserMessagesToday(t, constant.FreeTierDailyLimit-1)
	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "ainda dentro do limite",
	})
	require.NoError(t, err)

	// now at the limit: rejected with usage snapshot
	_, err = f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "acima do limite",
	})
	var limitErr *dto.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, constant.MsgDailyLimitReached, limitErr.Reason)
	assert.Equal(t, 0, limitErr.Usage.RemainingMessages)
	assert.Equal(t, constant.FreeTierDailyLimit, limitErr.Usage.MessagesSentToday)
}

func TestSendMessageSubscriberBypassesQuota(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	f.store.SeedSubscription(entity.UserSubscription{
		Id:               uuid.New(),
		UserId:           f.userId,
		Status:           entity.SubscriptionStatusActive,
		CurrentPeriodEnd: time.Now().Add(24 * time.Hour),
	})
	f.seedUserMessagesToday(t, constant.FreeTierDailyLimit+2)

	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "assinante sem limite",
	})
	require.NoError(t, err)
}

func TestSendMessageDNAModeAfterUpload(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	ctx := context.Background()

	uow := f.store.NewUnitOfWork(ctx)
	require.NoError(t, uow.AncestryRepository().Create(ctx, &entity.AncestryUpload{
		Id:            uuid.New(),
		UserId:        f.userId,
		ChatSessionId: f.sessionId,
		Profile: entity.AncestryProfile{
			Ancestry: []entity.AncestryRecord{
				{Region: "Ibérica", Percentage: 45.2, Countries: []string{"Portugal", "Espanha"}},
			},
			TestProvider: entity.TestProviderGenera,
			Confidence:   0.9,
		},
		CreatedAt: time.Now(),
	}))

	res, err := f.agentSvc.SendMessage(ctx, f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "Monte um roteiro ancestral",
	})
	require.NoError(t, err)

	assert.Equal(t, agent.ModeDNASpecialist, res.Context.AgentMode)
	assert.True(t, res.Context.DnaProcessed)
}

func TestSendMessageUpstreamFailureSkipsAssistantTurn(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	upstreamErr := &llm.Error{Kind: llm.ErrKindRateLimit, StatusCode: 429, Message: "Muitas solicitações. Aguarde alguns segundos e tente novamente."}
	f.provider.completions = []fakeCall{{err: upstreamErr}}

	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "vai falhar",
	})

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, llm.ErrKindRateLimit, llmErr.Kind)

	ctx := context.Background()
	uow := f.store.NewUnitOfWork(ctx)
	messages, err := uow.ChatMessageRepository().FindRecentBySession(ctx, f.userId, f.sessionId, 20)
	require.NoError(t, err)
	// the user turn was consumed, no assistant turn was written
	require.Len(t, messages, 1)
	assert.Equal(t, constant.ChatMessageRoleUser, messages[0].Role)
}

func TestSendMessageFallbackModel(t *testing.T) {
	f := newFixture(t, AgentOptions{FallbackModel: "gpt-4o-mini"})
	f.provider.completions = []fakeCall{
		{err: &llm.Error{Kind: llm.ErrKindQuota, StatusCode: 429, Message: "Limite de uso da IA atingido. Tente novamente mais tarde."}},
		{completion: &llm.Completion{Content: "resposta do fallback"}},
	}

	res, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "tenta de novo",
	})
	require.NoError(t, err)
	assert.Equal(t, "resposta do fallback", res.Content)

	require.Len(t, f.provider.calls, 2)
	assert.Empty(t, f.provider.calls[0].Model)
	assert.Equal(t, "gpt-4o-mini", f.provider.calls[1].Model)
}

func TestSendMessageNoFallbackForAuthErrors(t *testing.T) {
	f := newFixture(t, AgentOptions{FallbackModel: "gpt-4o-mini"})
	f.provider.completions = []fakeCall{
		{err: &llm.Error{Kind: llm.ErrKindAuth, StatusCode: 401, Message: "API key inválida. Verifique a configuração."}},
	}

	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "sem retry",
	})
	require.Error(t, err)
	assert.Len(t, f.provider.calls, 1)
}

func TestSendMessageValidation(t *testing.T) {
	f := newFixture(t, AgentOptions{})

	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "",
	})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, constant.MsgMessageRequired, valErr.Msg)

	long := make([]rune, constant.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       string(long),
	})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, constant.MsgMessageTooLong, valErr.Msg)
}

func TestSendMessageUnknownSession(t *testing.T) {
	f := newFixture(t, AgentOptions{})

	_, err := f.agentSvc.SendMessage(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: uuid.New(),
		Message:       "sessão inexistente",
	})
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestSendMessageStream(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	f.provider.completions = []fakeCall{{completion: &llm.Completion{Content: "fluxo completo"}}}

	var streamed string
	res, err := f.agentSvc.SendMessageStream(context.Background(), f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "transmite ao vivo",
	}, func(delta string) error {
		streamed += delta
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fluxo completo", res.Content)
	assert.Equal(t, "fluxo completo", streamed)
}

func TestSendMessagePreferenceMergeKeepsExisting(t *testing.T) {
	f := newFixture(t, AgentOptions{})
	ctx := context.Background()

	_, err := f.agentSvc.SendMessage(ctx, f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "Quero uma viagem com orçamento de 5 mil, estilo cultural",
	})
	require.NoError(t, err)

	// a later message must not overwrite the learned budget
	_, err = f.agentSvc.SendMessage(ctx, f.userId, &dto.SendChatRequest{
		ChatSessionId: f.sessionId,
		Message:       "Mudei de ideia, orçamento de 20 mil para a viagem",
	})
	require.NoError(t, err)

	uow := f.store.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: f.userId})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "5 mil", user.Preferences.Budget)
	assert.Equal(t, "cultural", user.Preferences.TravelStyle)
}
