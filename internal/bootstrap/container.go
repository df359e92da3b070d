package bootstrap

import (
	"log"
	"time"

	"driven-coach-be/internal/config"
	"driven-coach-be/internal/controller"
	"driven-coach-be/internal/pkg/logger"
	"driven-coach-be/internal/pkg/sessionlock"
	"driven-coach-be/internal/repository/implementation"
	"driven-coach-be/internal/repository/memory"
	"driven-coach-be/internal/repository/unitofwork"
	"driven-coach-be/internal/service"
	"driven-coach-be/pkg/llm/factory"

	pktNats "driven-coach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const turnCommittedTopic = "TURN_COMMITTED"

type Container struct {
	// Controllers
	CoachController    controller.ICoachController
	ProgressController controller.IProgressController
	ContentController  controller.IContentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ContentService  service.IContentService
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

	// 3. Providers & Infrastructure
	llmProvider, err := factory.NewCompletionProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		providerBaseURL(cfg),
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// In-memory state
	snapshotRepo := memory.NewSnapshotRepository()
	progressRepo := memory.NewProgressRepository()
	locks := sessionlock.NewRegistry()

	// 4. Services
	contentService := service.NewContentService(
		implementation.NewWeekRepository(db),
		implementation.NewQuestionRepository(db),
		implementation.NewPromptTemplateRepository(db),
		implementation.NewContentBlockRepository(db),
		snapshotRepo,
		sysLogger,
	)

	publisherService := service.NewPublisherService(turnCommittedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		turnCommittedTopic,
		progressRepo,
		sysLogger,
	)

	coachService := service.NewCoachService(
		uowFactory,
		contentService,
		llmProvider,
		locks,
		publisherService,
		natsPub,
		sysLogger,
		time.Duration(cfg.Ai.TurnTimeoutSeconds)*time.Second,
	)

	progressService := service.NewProgressService(
		uowFactory,
		contentService,
		progressRepo,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		CoachController:    controller.NewCoachController(coachService, sysLogger),
		ProgressController: controller.NewProgressController(progressService),
		ContentController:  controller.NewContentController(contentService),

		ConsumerService: consumerService,
		ContentService:  contentService,
	}
}

func providerBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "openai" {
		return cfg.Ai.OpenAIBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
