package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/cobranzia/debt-negotiation-be/internal/core/cache"
	"github.com/cobranzia/debt-negotiation-be/internal/core/engine"
	"github.com/cobranzia/debt-negotiation-be/internal/core/escalation"
	"github.com/cobranzia/debt-negotiation-be/internal/core/kb"
	"github.com/cobranzia/debt-negotiation-be/internal/core/nlp"
	"github.com/cobranzia/debt-negotiation-be/internal/core/responder"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/handlers"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/repositories"
	"github.com/cobranzia/debt-negotiation-be/internal/modules/negotiation/services"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/config"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/database"
	"github.com/cobranzia/debt-negotiation-be/internal/shared/utils"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting negotiation-api on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init cache store (Redis when configured, in-process otherwise)
	var store cache.Store
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Println("🧰 Using Redis cache store")
	} else {
		store = cache.NewMemoryStore()
		log.Println("🧰 Using in-memory cache store")
	}

	// Init repositories (use GORM instance)
	conversationRepo := repositories.NewConversationRepo(db.GORM)
	messageRepo := repositories.NewMessageRepo(db.GORM)
	proposalRepo := repositories.NewProposalRepo(db.GORM)
	corporateRepo := repositories.NewCorporateRepo(db.GORM)
	analyticsRepo := repositories.NewAnalyticsRepo(db.GORM)

	// Init knowledge resolver
	resolver := kb.NewResolver(db.GORM, store)

	// Init escalation rules
	escalator := escalation.NewEngine(nlp.NewRegexExtractor())

	// Init response provider
	var provider responder.Provider
	switch cfg.ResponderProvider {
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Fatal("❌ OPENAI_API_KEY is required when RESPONDER_PROVIDER=openai")
		}
		provider = responder.NewOpenAIProvider(cfg.OpenAIKey)
	default:
		provider = responder.NewHeuristicProvider()
	}
	generator := responder.NewGenerator(provider)
	log.Printf("🤖 Using responder provider: %s", cfg.ResponderProvider)

	// Init services
	analyticsService := services.NewAnalyticsService(analyticsRepo, store)

	eng := engine.NewEngine(
		conversationRepo,
		messageRepo,
		proposalRepo,
		resolver,
		escalator,
		generator,
		analyticsService,
		engine.Options{TurnTimeout: cfg.AITurnTimeout, MaxRetries: cfg.AIMaxRetries},
	)

	negotiationService := services.NewNegotiationService(eng, conversationRepo, messageRepo)
	corporateService := services.NewCorporateService(corporateRepo, resolver)

	sweeper := services.NewSweeperService(conversationRepo, eng, cfg.AbandonAfter, cfg.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("❌ Failed to start abandonment sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Init handlers
	negotiationHandler := handlers.NewNegotiationHandler(negotiationService)
	corporateHandler := handlers.NewCorporateHandler(corporateService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	healthHandler := handlers.NewHealthHandler(db)

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Debt Negotiation API",
	})

	// Middleware
	app.Use(cors.New())

	// Health check
	app.Get("/health", healthHandler.Health)

	// Negotiation routes
	app.Post("/negotiations", negotiationHandler.Start)
	app.Get("/negotiations/:id", negotiationHandler.GetConversation)
	app.Get("/negotiations/:id/messages", negotiationHandler.GetMessages)
	app.Post("/negotiations/:id/messages", negotiationHandler.SendMessage)
	app.Post("/negotiations/:id/outcome", negotiationHandler.RecordOutcome)

	// Corporate configuration routes
	app.Put("/corporate/:id/limits", corporateHandler.UpdateLimits)
	app.Post("/corporate/:id/responses", corporateHandler.AddCustomResponse)

	// Analytics routes
	app.Get("/analytics/:companyId/metrics", analyticsHandler.GetGeneralMetrics)
	app.Get("/analytics/:companyId/trend", analyticsHandler.GetTrend)

	// Start server
	log.Printf("✅ negotiation-api running at :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
