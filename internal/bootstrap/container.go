package bootstrap

import (
	"log"

	"ancestral-travel-be/internal/config"
	"ancestral-travel-be/internal/controller"
	"ancestral-travel-be/internal/pkg/logger"
	"ancestral-travel-be/internal/repository/memory"
	"ancestral-travel-be/internal/repository/unitofwork"
	"ancestral-travel-be/internal/service"
	"ancestral-travel-be/pkg/extract"
	"ancestral-travel-be/pkg/llm/factory"

	pktNats "ancestral-travel-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const chatEventsTopic = "CHAT_EVENTS"

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	SessionController  controller.ISessionController
	AncestryController controller.IAncestryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		cfg.Ai.Model,
		cfg.Ai.BaseURL,
		cfg.Ai.APIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// In-memory cache for parsed ancestry profiles
	profileCache := memory.NewProfileCache()

	// NATS (optional; events stay on the in-process bus when unset)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	publisherService := service.NewPublisherService(pubSub, chatEventsTopic)
	consumerService := service.NewConsumerService(pubSub, chatEventsTopic, natsPub, sysLogger)

	contextService := service.NewContextService(uowFactory, profileCache, sysLogger)
	sessionService := service.NewSessionService(uowFactory, profileCache, publisherService)
	ancestryService := service.NewAncestryService(
		uowFactory,
		extract.NewSimulatedExtractor(),
		profileCache,
		publisherService,
		sysLogger,
	)
	agentService := service.NewAgentService(
		uowFactory,
		contextService,
		llmProvider,
		publisherService,
		sysLogger,
		service.AgentOptions{
			FallbackModel: cfg.Ai.FallbackModel,
			Temperature:   cfg.Ai.Temperature,
			MaxTokens:     cfg.Ai.MaxTokens,
		},
	)

	return &Container{
		ChatController:     controller.NewChatController(agentService, contextService),
		SessionController:  controller.NewSessionController(sessionService),
		AncestryController: controller.NewAncestryController(ancestryService),

		ConsumerService: consumerService,
	}
}
