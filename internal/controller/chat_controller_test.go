package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/dto"
	"ancestral-travel-be/internal/pkg/serverutils"
	"ancestral-travel-be/internal/service"
	"ancestral-travel-be/pkg/travel/intent"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgentService struct {
	called bool
}

func (s *stubAgentService) SendMessage(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	s.called = true
	return &dto.SendChatResponse{Content: "ok"}, nil
}

func (s *stubAgentService) SendMessageStream(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, onDelta func(delta string) error) (*dto.SendChatResponse, error) {
	s.called = true
	return &dto.SendChatResponse{Content: "ok"}, nil
}

type stubContextService struct {
	quota dto.QuotaCheck
}

func (s *stubContextService) GetContext(ctx context.Context, userId, sessionId uuid.UUID) (*service.ConversationContext, error) {
	return nil, service.ErrSessionNotFound
}

func (s *stubContextService) CanSendMessage(ctx context.Context, userId uuid.UUID) (*dto.QuotaCheck, error) {
	q := s.quota
	return &q, nil
}

func (s *stubContextService) MergePreferences(ctx context.Context, userId uuid.UUID, extracted intent.Preferences) error {
	return nil
}

func newChatTestApp(agentSvc service.IAgentService, contextSvc service.IContextService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())

	ctrl := NewChatController(agentSvc, contextSvc)
	app.Post("/api/chat/v1", func(c *fiber.Ctx) error {
		c.Locals("user_id", uuid.New().String())
		return ctrl.Send(c)
	})
	return app
}

func TestSendStreamingOverQuotaReturnsLimitResponse(t *testing.T) {
	agentSvc := &stubAgentService{}
	contextSvc := &stubContextService{quota: dto.QuotaCheck{
		Allowed: false,
		Reason:  constant.MsgDailyLimitReached,
		Usage: dto.UsageSnapshot{
			MessagesSentToday: constant.FreeTierDailyLimit,
			IsFreeTier:        true,
			DailyLimit:        constant.FreeTierDailyLimit,
		},
	}}
	app := newChatTestApp(agentSvc, contextSvc)

	body, _ := json.Marshal(dto.SendChatRequest{
		ChatSessionId: uuid.New(),
		Message:       "Quero viajar",
		UseStreaming:  true,
	})
	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, res.StatusCode)
	assert.NotContains(t, res.Header.Get("Content-Type"), "text/event-stream")

	var limitRes dto.LimitExceededResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&limitRes))
	assert.Equal(t, "limit_exceeded", limitRes.ErrorType)
	assert.Equal(t, constant.MsgDailyLimitReached, limitRes.Message)
	assert.Equal(t, constant.FreeTierDailyLimit, limitRes.Data.MessagesSentToday)
	assert.False(t, agentSvc.called)
}

func TestSendStreamingTooLongMessageRejected(t *testing.T) {
	agentSvc := &stubAgentService{}
	contextSvc := &stubContextService{quota: dto.QuotaCheck{Allowed: true}}
	app := newChatTestApp(agentSvc, contextSvc)

	long := make([]byte, constant.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	body, _ := json.Marshal(dto.SendChatRequest{
		ChatSessionId: uuid.New(),
		Message:       string(long),
		UseStreaming:  true,
	})
	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.False(t, agentSvc.called)
}
