// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/nestscout/backend/internal/api/handlers"
	"github.com/nestscout/backend/internal/config"
	"github.com/nestscout/backend/internal/crawl"
	"github.com/nestscout/backend/internal/database"
	"github.com/nestscout/backend/internal/exa"
	"github.com/nestscout/backend/internal/extract"
	"github.com/nestscout/backend/internal/gemini"
	"github.com/nestscout/backend/internal/health"
	"github.com/nestscout/backend/internal/middleware"
	"github.com/nestscout/backend/internal/progress"
	"github.com/nestscout/backend/internal/repository"
	"github.com/nestscout/backend/internal/research"
	"github.com/nestscout/backend/internal/voicecall"
	"github.com/nestscout/backend/pkg/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting apartment research server...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// Analytics persistence is optional; the research pipeline runs without it.
	var dbManager *database.Manager
	var historyRepo *repository.ResearchHistoryRepository
	if cfg.Database.URL != "" {
		dbManager, err = database.NewManager(&database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Database migration failed")
		}
		historyRepo = repository.NewResearchHistoryRepository(dbManager.DB)
	} else {
		logger.Warn("DATABASE_URL not set - research history tracking disabled")
	}

	tracker := progress.NewTracker(buildProgressStore(cfg, dbManager, logger), logger)

	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go tracker.RunCleanupLoop(time.Hour, time.Duration(cfg.Research.SessionMaxAgeHr)*time.Hour, stopCleanup)

	// Research engine; a missing credential keeps the server up but turns the
	// research endpoints into configuration-error responses.
	researchConfigErr := cfg.ValidateResearch()
	var engine *research.Engine
	var geminiService *gemini.Service
	if researchConfigErr == nil {
		exaClient := exa.NewClient(cfg.Exa.BaseURL, cfg.Exa.APIKey, logger)
		exaService := exa.NewService(exaClient, logger)
		geminiClient := gemini.NewClient(cfg.Gemini.BaseURL, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		geminiService = gemini.NewService(geminiClient, logger)
		crawler := crawl.NewClient(logger)
		extractor := extract.NewExtractor(geminiClient, logger)

		engine = research.NewEngine(
			exaService,
			crawler,
			extractor,
			tracker,
			time.Duration(cfg.Research.SourceDelayMs)*time.Millisecond,
			logger,
		)
	} else {
		logger.WithError(researchConfigErr).Warn("Research engine disabled")
	}

	voiceConfigErr := cfg.ValidateVoice()
	var voiceClient *voicecall.Client
	if voiceConfigErr == nil {
		voiceClient = voicecall.NewClient(cfg.Vapi.BaseURL, cfg.Vapi.APIKey, cfg.Vapi.AssistantID, cfg.Vapi.PhoneNumberID, logger)
	} else {
		logger.WithError(voiceConfigErr).Warn("Voice call workflow disabled")
	}

	researchHandler := handlers.NewResearchHandler(engine, tracker, historyRepo, researchConfigErr, logger)
	criteriaHandler := handlers.NewCriteriaHandler(geminiService, researchConfigErr, logger)
	callHandler := handlers.NewCallHandler(voiceClient, voiceConfigErr, logger)
	healthChecker := health.NewHealthChecker(dbManager, logger, cfg.Exa.BaseURL, cfg.Gemini.BaseURL)

	router := setupRouter(researchHandler, criteriaHandler, callHandler, healthChecker)

	logger.WithField("port", cfg.Server.Port).Info("Server listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}

func buildProgressStore(cfg *config.Config, dbManager *database.Manager, logger *logrus.Logger) progress.Store {
	if cfg.Research.ProgressStore != "redis" {
		return progress.NewMemoryStore()
	}

	ttl := time.Duration(cfg.Research.SessionMaxAgeHr) * time.Hour

	if dbManager != nil {
		return progress.NewRedisStore(dbManager.Redis, ttl)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.WithError(err).Warn("Invalid REDIS_URL - falling back to in-memory progress store")
		return progress.NewMemoryStore()
	}
	return progress.NewRedisStore(redis.NewClient(redisOpts), ttl)
}

func setupRouter(
	researchHandler *handlers.ResearchHandler,
	criteriaHandler *handlers.CriteriaHandler,
	callHandler *handlers.CallHandler,
	healthChecker *health.HealthChecker,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.SecurityHeaders())

	rateLimiter := middleware.NewRateLimiter(60)
	router.Use(rateLimiter.RateLimit())

	router.GET("/health", func(c *gin.Context) {
		overall := healthChecker.CheckAll()
		code := http.StatusOK
		if overall.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, overall)
	})

	api := router.Group("/api")
	{
		api.POST("/research", researchHandler.HandleResearch)
		api.GET("/research/status/:sessionId", researchHandler.HandleResearchStatus)
		api.POST("/requirements", criteriaHandler.HandleRequirements)
		api.POST("/suggestions", criteriaHandler.HandleSuggestions)
		api.POST("/calls", callHandler.HandleMakeCall)
		api.GET("/calls/:id", callHandler.HandleCallStatus)
	}

	return router
}
