package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ancestral-travel-be/internal/constant"
	"ancestral-travel-be/internal/entity"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/memory"
	"ancestral-travel-be/pkg/agent"
	"ancestral-travel-be/pkg/extract"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ancestryFixture struct {
	store       *memory.Store
	ancestrySvc IAncestryService
	contextSvc  IContextService
	userId      uuid.UUID
	sessionId   uuid.UUID
}

func newAncestryFixture(t *testing.T) *ancestryFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	cache := memory.NewProfileCache()
	log := logger.NewZapLogger(t.TempDir()+"/test.log", false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := NewPublisherService(pubSub, "chat.events")

	userId := uuid.New()
	store.SeedUser(entity.User{Id: userId, Email: "viajante@example.com", CreatedAt: time.Now()})

	sessionId := uuid.New()
	uow := store.NewUnitOfWork(ctx)
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, &entity.ChatSession{
		Id:        sessionId,
		UserId:    userId,
		Title:     "Origens",
		CreatedAt: time.Now(),
	}))

	return &ancestryFixture{
		store:       store,
		ancestrySvc: NewAncestryService(store, extract.NewSimulatedExtractor(), cache, publisher, log),
		contextSvc:  NewContextService(store, cache, log),
		userId:      userId,
		sessionId:   sessionId,
	}
}

func TestUploadGeneraReportSwitchesAgentMode(t *testing.T) {
	f := newAncestryFixture(t)
	ctx := context.Background()

	res, err := f.ancestrySvc.Upload(ctx, f.userId, &UploadAncestryInput{
		ChatSessionId: f.sessionId,
		Filename:      "relatorio-genera.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TestProviderGenera, res.TestProvider)
	require.Len(t, res.Ancestry, 5)
	assert.Equal(t, "Ibérica", res.Ancestry[0].Region)
	assert.InDelta(t, 45.2, res.Ancestry[0].Percentage, 0.001)
	for i := 1; i < len(res.Ancestry); i++ {
		assert.GreaterOrEqual(t, res.Ancestry[i-1].Percentage, res.Ancestry[i].Percentage)
	}
	assert.Contains(t, res.EthnicGroups, "Português")
	assert.GreaterOrEqual(t, res.Confidence, 0.8)

	convCtx, err := f.contextSvc.GetContext(ctx, f.userId, f.sessionId)
	require.NoError(t, err)
	assert.Equal(t, agent.ModeDNASpecialist, convCtx.AgentMode)
	assert.True(t, convCtx.DnaProcessed)
	require.NotNil(t, convCtx.Profile)
	assert.Equal(t, entity.TestProviderGenera, convCtx.Profile.TestProvider)
}

func TestUploadLatestReportWins(t *testing.T) {
	f := newAncestryFixture(t)
	ctx := context.Background()

	_, err := f.ancestrySvc.Upload(ctx, f.userId, &UploadAncestryInput{
		ChatSessionId: f.sessionId,
		Filename:      "genera.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	_, err = f.ancestrySvc.Upload(ctx, f.userId, &UploadAncestryInput{
		ChatSessionId: f.sessionId,
		Filename:      "myheritage.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	convCtx, err := f.contextSvc.GetContext(ctx, f.userId, f.sessionId)
	require.NoError(t, err)
	require.NotNil(t, convCtx.Profile)
	assert.Equal(t, entity.TestProviderMyHeritage, convCtx.Profile.TestProvider)
}

func TestUploadValidation(t *testing.T) {
	f := newAncestryFixture(t)
	ctx := context.Background()

	var validationErr *ValidationError

	_, err := f.ancestrySvc.Upload(ctx, f.userId, &UploadAncestryInput{
		ChatSessionId: f.sessionId,
		Filename:      "foto.png",
		MimeType:      "image/png",
		Data:          []byte("png"),
	})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, constant.MsgUnsupportedFormat, validationErr.Msg)

	_, err = f.ancestrySvc.Upload(ctx, f.userId, &UploadAncestryInput{
		ChatSessionId: f.sessionId,
		Filename:      "grande.pdf",
		MimeType:      "application/pdf",
		Data:          make([]byte, constant.MaxUploadSizeBytes+1),
	})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, constant.MsgFileTooLarge, validationErr.Msg)
}

func TestUploadUnknownSession(t *testing.T) {
	f := newAncestryFixture(t)

	_, err := f.ancestrySvc.Upload(context.Background(), f.userId, &UploadAncestryInput{
		ChatSessionId: uuid.New(),
		Filename:      "genera.pdf",
		MimeType:      "application/pdf",
		Data:          []byte("%PDF-1.4"),
	})
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}
