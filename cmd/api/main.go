package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sylvanlabs/sylvan-server/internal/cache"
	"github.com/sylvanlabs/sylvan-server/internal/clients"
	"github.com/sylvanlabs/sylvan-server/internal/config"
	"github.com/sylvanlabs/sylvan-server/internal/database"
	"github.com/sylvanlabs/sylvan-server/internal/handlers"
	"github.com/sylvanlabs/sylvan-server/internal/logger"
	"github.com/sylvanlabs/sylvan-server/internal/middleware"
	"github.com/sylvanlabs/sylvan-server/internal/services"
	"github.com/sylvanlabs/sylvan-server/internal/telemetry"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry Tracer
	ctx := context.Background()
	tracerShutdown, err := telemetry.InitTracer(ctx, "sylvan-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	// Initialize OpenTelemetry Metrics
	meterShutdown, err := telemetry.InitMeter(ctx, "sylvan-api", cfg.OTLPEndpoint)
	if err != nil {
		log.Printf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Error shutting down metrics: %v", err)
		}
	}()

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Collect connection pool metrics in the background
	go database.StartConnectionPoolMetricsCollector(ctx, db.DB, 15*time.Second)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Sylvan API",
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     `{"time":"${time}","status":${status},"latency":"${latency}","ip":"${ip}","method":"${method}","path":"${path}","user_agent":"${ua}","error":"${error}"}` + "\n",
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}))
	app.Use(telemetry.New(telemetry.Config{
		ServiceName: "sylvan-api",
	}))
	app.Use(middleware.Prometheus())
	// CORS: the mobile app calls from any origin; preflight answers 200
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowHeaders:     "Accept, Accept-Encoding, Authorization, Content-Type, DNT, Origin, User-Agent, X-Requested-With",
		AllowCredentials: false,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400,
	}))

	// Setup routes
	setupRoutes(app, db, cfg)

	// Start server
	port := cfg.ServerPort
	if port == "" {
		port = "3000"
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Error shutting down server: %v", err)
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, db *database.DB, cfg *config.Config) {
	// External API adapters: one immutable instance per process
	openMeteo := clients.NewOpenMeteoClient(cfg.OpenMeteoBaseURL)
	osrm := clients.NewOSRMClient(cfg.OSRMBaseURL)
	overpass := clients.NewOverpassClient(cfg.OverpassBaseURL)
	allTrails := clients.NewAllTrailsClient(cfg.AllTrailsBaseURL, cfg.RapidAPIKey)
	openAI := clients.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.CompletionModel)

	// Services
	cacheClient := cache.New(db)
	weatherService := services.NewWeatherService(openMeteo, cacheClient, cfg.WeatherCacheTTLMin)
	placesService := services.NewPlacesService(overpass)
	voiceService := services.NewVoiceService(openAI, openAI, openAI)
	chatService := services.NewChatService(db)
	excursionService := services.NewExcursionService(db)

	// Prometheus scrape endpoint
	app.Get("/metrics", middleware.PrometheusHandler())

	// Health check endpoints for k8s probes
	app.Get("/healthz", handlers.HealthCheck)
	app.Get("/v1/healthz", handlers.HealthCheck)
	app.Get("/v1/health", handlers.HealthCheck)
	app.Get("/v1/readiness", handlers.ReadinessCheck(db))
	app.Get("/v1/liveness", handlers.LivenessCheck)

	// API v1 group
	v1 := app.Group("/v1")

	// Auth routes (no auth required)
	auth := v1.Group("/auth")
	handlers.SetupAuthRoutes(auth, db, cfg)

	// Users routes (auth required)
	users := v1.Group("/users", middleware.AuthRequired(cfg))
	handlers.SetupUserRoutes(users, db, cfg)

	// Proxy endpoints (public)
	handlers.SetupWeatherRoutes(v1, weatherService)
	handlers.SetupRouteRoutes(v1, osrm)
	handlers.SetupTrailRoutes(v1, allTrails)
	handlers.SetupPlaceRoutes(v1, placesService)

	// Speech endpoints (optionally authenticated for session persistence)
	speech := v1.Group("/", middleware.OptionalAuth(cfg))
	handlers.SetupSpeechRoutes(speech, voiceService, chatService, excursionService)

	// Chat session routes (auth required)
	chat := v1.Group("/chat", middleware.AuthRequired(cfg))
	handlers.SetupChatRoutes(chat, chatService)

	// Excursion routes (auth required)
	excursions := v1.Group("/excursions", middleware.AuthRequired(cfg))
	handlers.SetupExcursionRoutes(excursions, excursionService)
}
