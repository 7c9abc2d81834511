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

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/interview-assistant/docs"
	pkgvalidator "github.com/johnquangdev/interview-assistant/pkg/validator"

	"github.com/johnquangdev/interview-assistant/internal/adapter/handler"
	"github.com/johnquangdev/interview-assistant/internal/adapter/repository"
	"github.com/johnquangdev/interview-assistant/internal/adapter/repository/memory"
	"github.com/johnquangdev/interview-assistant/internal/domain/repositories"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/cache"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/events"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/external/analysis"
	httpmw "github.com/johnquangdev/interview-assistant/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/scheduler"
	"github.com/johnquangdev/interview-assistant/internal/infrastructure/token"
	botUsecase "github.com/johnquangdev/interview-assistant/internal/usecase/bot"
	"github.com/johnquangdev/interview-assistant/internal/usecase/interview"
	pkgai "github.com/johnquangdev/interview-assistant/pkg/ai"
	"github.com/johnquangdev/interview-assistant/pkg/config"
	"github.com/johnquangdev/interview-assistant/pkg/jwt"
	pkgmw "github.com/johnquangdev/interview-assistant/pkg/middleware"
)

// @title           Interview Assistant API
// @version         1.0
// @description     Adaptive interview sessions: bots, token-gated sessions, participants and responses.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

type storage struct {
	bots         repositories.BotRepository
	sessions     repositories.InterviewSessionRepository
	participants repositories.ParticipantSessionRepository
	close        func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	logger.Info("initializing dependencies", zap.String("storage_driver", cfg.Storage.Driver))

	store, err := newStorage(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", zap.Error(err))
	}
	defer store.close()

	// Interview events go to Redis when enabled
	var publisher interview.EventPublisher = events.NopPublisher{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		publisher = events.NewRedisPublisher(redisClient, cfg.Redis.Channel)
		logger.Info("publishing interview events", zap.String("channel", cfg.Redis.Channel))
	}

	// Answer analysis is optional; without a key every response is analysis-unavailable
	var analyzer interview.AnswerAnalyzer
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	if groqClient.Configured() {
		analyzer = analysis.NewGroqAnalyzer(groqClient, cfg.Groq.Timeout, cfg.Groq.MaxRetryElapsed, logger.Named("analysis"))
	} else {
		logger.Warn("GROQ_API_KEY not set, answer analysis disabled")
	}

	clk := clock.New()

	botService := botUsecase.NewBotService(store.bots, store.sessions, clk, logger.Named("bot"))
	interviewService := interview.NewInterviewService(
		store.bots,
		store.sessions,
		store.participants,
		token.NewRandomGenerator(token.DefaultSize),
		analyzer,
		publisher,
		clk,
		interview.Policy{
			DefaultExpiresInHours: cfg.Interview.DefaultExpiresHours,
			TokenAttempts:         cfg.Interview.TokenAttempts,
			Thresholds: interview.Thresholds{
				LowRelevance:       cfg.Interview.LowRelevance,
				NegativeSentiment:  cfg.Interview.NegativeSentiment,
				CompletionFraction: cfg.Interview.CompletionFraction,
			},
		},
		logger.Named("interview"),
	)

	// Optional background expiry; lazy expiry on access always applies
	if cfg.Sweeper.Enabled {
		sweeper := scheduler.NewExpirySweeper(interviewService, cfg.Sweeper.Schedule, cfg.Sweeper.Timeout, logger.Named("sweeper"))
		if err := sweeper.Start(); err != nil {
			logger.Fatal("failed to start expiry sweeper", zap.Error(err))
		}
		defer sweeper.Stop()
	}

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	router := handler.NewRouter(
		cfg,
		handler.NewBotHandler(botService, logger),
		handler.NewSessionHandler(interviewService, logger),
		handler.NewInterviewHandler(interviewService, logger),
		httpmw.EchoAuth(jwtManager),
		httpmw.OptionalEchoAuth(jwtManager),
		pkgmw.RequireSessionOwner(interviewService),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newStorage(cfg *config.Config, logger *zap.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &storage{
			bots:         store.Bots(),
			sessions:     store.Sessions(),
			participants: store.Participants(),
			close:        func() {},
		}, nil
	}

	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Production deployments should manage schema via cmd/migrate
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("DB_AUTO_MIGRATE is enabled in production; run cmd/migrate instead")
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			return nil, err
		}
	}

	return &storage{
		bots:         repository.NewBotRepository(db),
		sessions:     repository.NewInterviewSessionRepository(db),
		participants: repository.NewParticipantSessionRepository(db),
		close: func() {
			if err := database.CloseDB(db); err != nil {
				logger.Warn("failed to close database", zap.Error(err))
			}
		},
	}, nil
}
