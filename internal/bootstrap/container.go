package bootstrap

import (
	"context"

	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/controller"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/mailer"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/pkg/serverutils"
	"ai-workspace-be/internal/pkg/token"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/internal/repository/memory"
	"ai-workspace-be/internal/repository/redisstore"
	"ai-workspace-be/internal/repository/unitofwork"
	"ai-workspace-be/internal/service"
	"ai-workspace-be/internal/websocket"
	"ai-workspace-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ProfileController   controller.IProfileController
	WorkspaceController controller.IWorkspaceController
	MemberController    controller.IMemberController
	NoteController      controller.INoteController
	DocumentController  controller.IDocumentController
	CardController      controller.ICardController
	ChatController      controller.IChatController
	SearchController    controller.ISearchController
	AIController        controller.IAIController
	HealthController    controller.IHealthController

	JwtMiddleware fiber.Handler
	WsMiddleware  fiber.Handler

	// Background services, started by the caller
	ConsumerService service.IConsumerService
	WebSocketHub    *websocket.Hub

	Logger  logger.ILogger
	Metrics *metrics.Collector
}

func NewContainer(cfg *config.Config, infra *Infrastructure) (*Container, error) {
	log := infra.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	collector := infra.Metrics
	if collector == nil {
		collector = metrics.NewCollector()
	}

	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(infra.Gateway)
	tokens := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	emailService := infra.Mailer
	if emailService == nil {
		emailService = newEmailService(cfg, log)
	}

	llmProvider := infra.LLM
	if llmProvider == nil {
		provider, err := factory.NewLLMProvider(factory.Config{
			Provider:           cfg.Ai.Provider,
			Model:              cfg.Ai.Model,
			APIKey:             cfg.Ai.APIKey,
			BaseURL:            cfg.Ai.BaseURL,
			OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
			Timeout:            cfg.Ai.Timeout,
			BreakerMaxFailures: cfg.Ai.BreakerMaxFailures,
			BreakerOpenTimeout: cfg.Ai.BreakerOpenTimeout,
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("LLM", "Circuit breaker state changed", map[string]interface{}{
					"name": name,
					"from": from.String(),
					"to":   to.String(),
				})
			},
		})
		if err != nil {
			return nil, err
		}
		llmProvider = provider
	}
	log.Info("BOOTSTRAP", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Ai.Provider,
		"model":    cfg.Ai.Model,
	})

	var loginAttempts contract.LoginAttemptRepository
	if infra.Redis != nil {
		loginAttempts = redisstore.NewLoginAttemptRepository(infra.Redis)
	} else {
		loginAttempts = memory.NewLoginAttemptRepository()
	}

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	var sink service.EventSink
	if infra.Nats != nil {
		sink = infra.Nats
	}
	eventService := service.NewEventService(pubSub, cfg.App.EventTopic, sink, log, collector)
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventTopic, uowFactory, log)

	// 3. Realtime
	wsHub := websocket.NewHub(infra.Redis, log)

	// 4. Services
	authService := service.NewAuthService(uowFactory, tokens, loginAttempts, eventService, collector, log, service.AuthOptions{
		BcryptCost:       cfg.Auth.BcryptCost,
		MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
		AttemptWindow:    cfg.Auth.LoginAttemptReset,
	})
	profileService := service.NewProfileService(uowFactory, cfg.Auth.BcryptCost)
	workspaceService := service.NewWorkspaceService(uowFactory, eventService)
	memberService := service.NewMemberService(uowFactory, emailService, eventService, log)
	noteService := service.NewNoteService(uowFactory, eventService)
	aiService := service.NewAIService(uowFactory, llmProvider, collector, log)
	documentService := service.NewDocumentService(uowFactory, aiService, eventService)
	cardService := service.NewCardService(uowFactory, eventService)
	chatService := service.NewChatService(uowFactory, aiService, wsHub, eventService)
	searchService := service.NewSearchService(uowFactory)

	health := service.HealthDependencies{
		Database: infra.Gateway,
		Redis:    service.RedisPinger(infra.Redis),
		Config:   cfg,
	}
	if infra.Nats != nil {
		health.Nats = infra.Nats
	}
	healthService := service.NewHealthService(health)

	// 5. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ProfileController:   controller.NewProfileController(profileService),
		WorkspaceController: controller.NewWorkspaceController(workspaceService),
		MemberController:    controller.NewMemberController(memberService),
		NoteController:      controller.NewNoteController(noteService),
		DocumentController:  controller.NewDocumentController(documentService),
		CardController:      controller.NewCardController(cardService),
		ChatController:      controller.NewChatController(chatService, wsHub),
		SearchController:    controller.NewSearchController(searchService),
		AIController:        controller.NewAIController(aiService),
		HealthController:    controller.NewHealthController(healthService),

		JwtMiddleware: serverutils.NewJwtMiddleware(tokens),
		WsMiddleware:  serverutils.NewQueryTokenMiddleware(tokens),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,

		Logger:  log,
		Metrics: collector,
	}, nil
}

// Start subscribes the activity consumer and runs the websocket hub until
// ctx is done. Events published before Start are not recorded.
func (c *Container) Start(ctx context.Context) error {
	if err := c.ConsumerService.Consume(ctx); err != nil {
		return err
	}
	go c.WebSocketHub.Run(ctx)
	return nil
}

func newEmailService(cfg *config.Config, log logger.ILogger) mailer.IEmailService {
	if cfg.SMTP.Host == "" || cfg.SMTP.Email == "" {
		log.Info("BOOTSTRAP", "SMTP not configured, invite emails disabled", nil)
		return mailer.NewNoopEmailService(log)
	}
	return mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		cfg.App.BaseURL,
		log,
	)
}
