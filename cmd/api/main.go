package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/tuananhdev/slack-assistant/pkg/validator"

	"github.com/tuananhdev/slack-assistant/internal/adapter/handler"
	"github.com/tuananhdev/slack-assistant/internal/adapter/repository"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/cache"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/database"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/calendar"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/nlp"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/oauth"
	slackext "github.com/tuananhdev/slack-assistant/internal/infrastructure/external/slack"
	"github.com/tuananhdev/slack-assistant/internal/infrastructure/external/weather"
	"github.com/tuananhdev/slack-assistant/internal/usecase/bot"
	"github.com/tuananhdev/slack-assistant/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	redisStore := cache.NewRedisStore(redisClient)

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize external clients
	log.Println("💬 Initializing Slack client...")
	slackClient := slackext.NewClient(cfg.Slack.BotToken)

	log.Println("⛅ Initializing weather client...")
	weatherClient := weather.NewClient(&cfg.Weather)

	log.Println("🧠 Initializing intent-detection client...")
	nlpClient := nlp.NewClient(&cfg.NLP)

	// Initialize OAuth provider for Google Calendar
	log.Println("🔐 Initializing OAuth provider...")
	googleProvider := oauth.NewGoogleProvider(
		cfg.Google.ClientID,
		cfg.Google.ClientSecret,
		cfg.Google.RedirectURL,
	)

	// Initialize state manager with Redis for CSRF protection
	log.Println("🔒 Initializing state manager...")
	stateManager := oauth.NewStateManager(redisStore)

	// Initialize calendar client
	log.Println("📅 Initializing calendar client...")
	tokenStore := calendar.NewRedisTokenStore(redisClient)
	calendarClient := calendar.NewClient(googleProvider.Config(), tokenStore)

	// Initialize bot service
	log.Println("🤖 Initializing bot service...")
	botService := bot.NewService(
		meetingRepo,
		taskRepo,
		slackClient,
		weatherClient,
		calendarClient,
		cfg.Bot.ThrottleWindow,
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	botHandler := handler.NewBot(cfg, nlpClient, botService, redisStore, logger)
	interactiveHandler := handler.NewInteractive(cfg, botService, logger)
	calendarHandler := handler.NewCalendar(googleProvider, stateManager, tokenStore, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, botHandler, interactiveHandler, calendarHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
