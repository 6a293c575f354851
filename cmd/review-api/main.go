package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hrdesk/review-api/api/swagger"
	"github.com/hrdesk/review-api/internal/handler"
	"github.com/hrdesk/review-api/internal/ledger"
	"github.com/hrdesk/review-api/internal/middleware"
	"github.com/hrdesk/review-api/internal/repository"
	"github.com/hrdesk/review-api/internal/service"
	"github.com/hrdesk/review-api/pkg/cache"
	"github.com/hrdesk/review-api/pkg/config"
	"github.com/hrdesk/review-api/pkg/database"
	"github.com/hrdesk/review-api/pkg/logger"
	corsmiddleware "github.com/hrdesk/review-api/pkg/middleware/cors"
	reqidmiddleware "github.com/hrdesk/review-api/pkg/middleware/requestid"
)

// @title HR Desk Review API
// @version 0.1.0
// @description Employee table editor and document page review service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	statusLedger, err := ledger.OpenStatusLedger(cfg.Review.StatusLedgerPath)
	if err != nil {
		logr.Sugar().Fatalw("failed to open status ledger", "error", err)
	}
	textLedger, err := ledger.OpenTextLedger(cfg.Review.TextLedgerPath)
	if err != nil {
		logr.Sugar().Fatalw("failed to open text ledger", "error", err)
	}

	metricsService := service.NewMetricsService()

	var cacheService *service.CacheService
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheService = service.NewCacheService(cacheRepo, metricsService, cfg.Analytics.CacheTTL, logr, true)
		}
	}

	validate := validator.New()
	employeeRepo := repository.NewEmployeeRepository(db)

	authService := service.NewAuthService(cfg.Auth, validate, logr)
	editorService := service.NewEditorService(employeeRepo, cacheService, metricsService, validate, logr)
	analyticsService := service.NewAnalyticsService(employeeRepo, cacheService, metricsService, logr)
	reviewService := service.NewReviewService(statusLedger, textLedger, cfg.Review.PageCount, logr)

	authHandler := handler.NewAuthHandler(authService)
	editorHandler := handler.NewEditorHandler(editorService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/auth/login", authHandler.Login)

	authed := r.Group("/", middleware.JWT(authService))
	{
		authed.GET("/auth/me", authHandler.Me)

		authed.GET("/employees", editorHandler.Snapshot)
		authed.POST("/employees/edits", editorHandler.RecordEdits)
		authed.GET("/employees/edits", editorHandler.Pending)
		authed.DELETE("/employees/edits", editorHandler.Reset)
		authed.POST("/employees/commit", editorHandler.Commit)
		authed.GET("/employees/export.csv", editorHandler.ExportCSV)
		authed.GET("/employees/export.pdf", editorHandler.ExportPDF)

		authed.GET("/pages", reviewHandler.List)
		authed.GET("/pages/:page", reviewHandler.Page)
		authed.POST("/pages/:page/approve", reviewHandler.Approve)
		authed.PUT("/pages/:page/text", reviewHandler.SaveText)

		if cfg.Analytics.Enabled {
			authed.GET("/analytics/salary-summary", analyticsHandler.SalarySummary)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
