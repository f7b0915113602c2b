package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"entrematch/internal/catalog"
	"entrematch/internal/config"
	"entrematch/internal/db"
	"entrematch/internal/engine"
	apihttp "entrematch/internal/http"
	"entrematch/internal/repository"
	"entrematch/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cat, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatal("catalog load", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := db.Ping(ctxPing, pool); err != nil {
		logger.Warn("db ping failed", zap.Error(err))
	}
	cancel()

	if cfg.SchemaBootstrap {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("schema bootstrap", zap.Error(err))
		}
	}

	profileRepo := repository.NewPgProfileRepository(pool)
	answerRepo := repository.NewPgAnswerRepository(pool)
	recommendationRepo := repository.NewPgRecommendationRepository(pool)
	feedbackRepo := repository.NewPgFeedbackRepository(pool)

	submitWindow := time.Duration(cfg.SubmitWindowSeconds) * time.Second
	var (
		resultCache = service.NewMemoryResultCache()
		limiter     = service.NewSubmitRateLimiter(submitWindow, cfg.SubmitMax)
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory cache", zap.Error(err))
		} else {
			resultCache = service.NewRedisResultCache(redisClient)
			limiter = service.NewRedisSubmitRateLimiter(redisClient, submitWindow, cfg.SubmitMax)
		}
		cancel()
	}

	tokens := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	profileSvc := service.NewProfileService(logger, profileRepo, tokens)
	questionnaireSvc := service.NewQuestionnaireService(logger, cat, profileRepo, answerRepo, resultCache, limiter)
	recommendationSvc := service.NewRecommendationService(
		logger,
		engine.New(cat),
		profileRepo,
		answerRepo,
		recommendationRepo,
		resultCache,
		time.Duration(cfg.ResultCacheTTLMinutes)*time.Minute,
	)
	feedbackSvc := service.NewFeedbackService(logger, feedbackRepo, recommendationSvc)

	router := apihttp.NewRouter(
		logger,
		tokens,
		apihttp.NewProfileHandler(logger, profileSvc),
		apihttp.NewQuestionnaireHandler(logger, questionnaireSvc),
		apihttp.NewRecommendationHandler(logger, recommendationSvc),
		apihttp.NewFeedbackHandler(logger, feedbackSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("sectors", len(cat.Sectors)),
		zap.Int("clusters", len(cat.Clusters)),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogDir != "" {
		return catalog.LoadDir(cfg.CatalogDir)
	}
	return catalog.Default()
}
