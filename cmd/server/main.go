package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/cache"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/config"
	apperrors "github.com/ChatchaiTritham/EdcellenceEdPEx/internal/errors"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/monitoring"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/ratelimit"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/scoring"
	"github.com/ChatchaiTritham/EdcellenceEdPEx/internal/types"
)

const serviceVersion = "1.0.0"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	scorer, err := scoring.NewOrganizationalScorer(scoring.ScorerConfig{
		CategoryWeights: cfg.Weights.Categories,
		ProcessWeights:  cfg.Weights.Process,
		ResultsWeights:  cfg.Weights.Results,
		Logger:          logger,
	})
	if err != nil {
		slog.Error("Failed to build scorer from configured weights", "error", err)
		os.Exit(1)
	}

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	appCache := cache.NewCache(cfg.Cache.TTL)

	redisClient, err := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer redisClient.Close()

	limiter := ratelimit.NewRateLimiter(redisClient, ratelimit.Config{
		IPLimitPerMin:   cfg.RateLimit.IPLimitPerMin,
		BurstMultiplier: cfg.RateLimit.BurstMultiplier,
	}, appMetrics)

	r := setupRouter(scorer, appMetrics, appLogger, appCache, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

// setupRouter wires middleware and routes; split out so the tests can
// exercise the full handler chain without a listening socket.
func setupRouter(
	scorer *scoring.OrganizationalScorer,
	appMetrics *monitoring.Metrics,
	appLogger *monitoring.Logger,
	appCache *cache.Cache,
	limiter *ratelimit.RateLimiter,
) *gin.Engine {
	r := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	if limiter != nil {
		r.Use(ratelimit.Middleware(limiter, appMetrics))
	}
	r.Use(appCache.Middleware(appMetrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   serviceVersion,
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, appMetrics.GetStats())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, appCache.Stats())
	})

	if limiter != nil {
		r.GET("/ratelimit/status", ratelimit.StatusHandler(limiter))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")

	v1.GET("/categories", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"categories": scoring.CategoryNames(),
			"weights":    scorer.CategoryWeights(),
		})
	})

	v1.POST("/score/item", func(c *gin.Context) {
		var req types.ItemScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		start := time.Now()
		result, err := scorer.ComputeItemScore(req.Category, req.Item, req.Indicators)
		if err != nil {
			abortWithError(c, appLogger, apperrors.ToAppError(err))
			return
		}

		appMetrics.IncrementScoringOperation()
		appLogger.ScoringLogger("score_item", req.Category, result.Score, result.Confidence, time.Since(start), false)
		c.JSON(http.StatusOK, result)
	})

	v1.POST("/score/category", func(c *gin.Context) {
		var req types.CategoryScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		start := time.Now()
		result, err := scorer.ComputeCategoryScore(req.Category, req.ItemScores, req.ItemWeights)
		if err != nil {
			abortWithError(c, appLogger, apperrors.ToAppError(err))
			return
		}

		appMetrics.IncrementScoringOperation()
		appLogger.ScoringLogger("score_category", req.Category, result.Score, result.Confidence, time.Since(start), false)
		c.JSON(http.StatusOK, result)
	})

	v1.POST("/score/organization", func(c *gin.Context) {
		var req types.OrganizationScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		start := time.Now()
		result, err := scorer.ComputeOrganizationalScore(req.CategoryScores)
		if err != nil {
			abortWithError(c, appLogger, apperrors.ToAppError(err))
			return
		}

		appMetrics.IncrementScoringOperation()
		appLogger.ScoringLogger("score_organization", 0, result.Score, result.Confidence, time.Since(start), false)
		c.JSON(http.StatusOK, result)
	})

	v1.POST("/coherence", func(c *gin.Context) {
		var req types.OrganizationScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		index := scorer.CoherenceIndex(req.CategoryScores)
		c.JSON(http.StatusOK, gin.H{
			"coherence_index": index,
		})
	})

	v1.POST("/gap-analysis", func(c *gin.Context) {
		var req types.GapAnalysisRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		criticality, err := parseItemFactors(req.Criticality)
		if err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid criticality key", err.Error()))
			return
		}
		risk, err := parseItemFactors(req.Risk)
		if err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid risk key", err.Error()))
			return
		}

		records := scorer.GapAnalysis(req.Current, req.Target, criticality, risk)
		c.JSON(http.StatusOK, gin.H{
			"gaps":  records,
			"count": len(records),
		})
	})

	v1.POST("/scorecard", func(c *gin.Context) {
		var req types.ScorecardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, appLogger, apperrors.NewValidationError("invalid request body", err.Error()))
			return
		}

		includeHealth := true
		if req.IntegrationHealth != nil {
			includeHealth = *req.IntegrationHealth
		}

		start := time.Now()
		card, err := scorer.GenerateScorecard(req.CategoryScores, includeHealth)
		if err != nil {
			abortWithError(c, appLogger, apperrors.ToAppError(err))
			return
		}

		appMetrics.IncrementScorecard()
		appLogger.ScoringLogger("scorecard", 0, card.OrganizationalScore, card.Confidence, time.Since(start), false)
		c.JSON(http.StatusOK, card)
	})

	return r
}

// abortWithError logs the error and writes the structured error body
// with the status the error category maps to.
func abortWithError(c *gin.Context, logger *monitoring.Logger, appErr *apperrors.AppError) {
	apperrors.LogError(c, appErr)
	logger.APIErrorLogger(appErr, c.Request.Method, c.Request.URL.Path, c.ClientIP(), appErr.HTTPStatus)
	c.JSON(appErr.HTTPStatus, gin.H{
		"error":    appErr.Error(),
		"category": string(appErr.Category),
	})
	c.Abort()
}

// parseItemFactors converts wire keys like "2:3" into item keys.
func parseItemFactors(factors map[string]float64) (map[scoring.ItemKey]float64, error) {
	if len(factors) == 0 {
		return nil, nil
	}

	parsed := make(map[scoring.ItemKey]float64, len(factors))
	for key, value := range factors {
		parts := strings.SplitN(key, ":", 2)
		if len(parts) != 2 {
			return nil, errKeyFormat(key)
		}
		category, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errKeyFormat(key)
		}
		item, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errKeyFormat(key)
		}
		parsed[scoring.ItemKey{Category: category, Item: item}] = value
	}
	return parsed, nil
}

func errKeyFormat(key string) error {
	return apperrors.NewValidationError("factor keys must look like \"category:item\", got " + strconv.Quote(key))
}
