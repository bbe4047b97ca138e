package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"groupcal/config"
	"groupcal/cron"
	"groupcal/database"
	eventRepo "groupcal/database/repository/event"
	"groupcal/handlers"
	"groupcal/metrics"
	"groupcal/middleware"
	"groupcal/routes"
	ai "groupcal/services/intelligence"
	"groupcal/services/schedule"
	"groupcal/services/tasks"
	"groupcal/utils"
	"groupcal/web"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the calendar page, JSON API and background worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				config.AppConfig.AppPort = port
			}
			return runServer()
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (default: APP_PORT)")
	return cmd
}

func runServer() error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.InitDB(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if err := utils.InitCache(); err != nil {
		logger.Warn("serve: redis cache unavailable, continuing without warm cache", zap.Error(err))
	}
	cacheClient := utils.GetCacheClient()

	archive, err := utils.Cloudinary()
	if err != nil {
		return fmt.Errorf("serve: failed to initialize image archive: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	utils.StartHealthMonitor(ctx, cacheClient, database.MongoClient, 30*time.Second)

	// repositories.
	events := eventRepo.NewMongoEventRepo()
	if err := events.EnsureIndexes(); err != nil {
		logger.Warn("serve: failed to ensure event indexes", zap.Error(err))
	}

	// extraction.
	var generator ai.ContentGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature)
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		defer gemini.Close()
		generator = gemini
	} else {
		logger.Warn("serve: GEMINI_API_KEY not set, schedule submissions will be rejected")
	}
	extractor := ai.NewScheduleExtractor(generator, ai.NewRedisExtractionStore(cacheClient, 24*time.Hour), cfg.DefaultYear)

	// background jobs.
	queueClient := asynq.NewClient(cron.RedisOpts())
	defer queueClient.Close()
	var images schedule.ImageQueue
	if archive.Enabled() {
		images = tasks.NewAsynqImageQueue(queueClient)
	}

	var recorder schedule.Recorder
	var appMetrics *metrics.Metrics
	if cfg.MetricsEnabled {
		appMetrics = metrics.New()
		recorder = appMetrics
	}

	// services.
	scheduleService := schedule.NewScheduleService(
		events,
		extractor,
		schedule.NewRedisSlotCache(cacheClient, cfg.FreeSlotCacheTTL),
		images,
		schedule.Options{
			WorkStart:       cfg.WorkStartTime,
			WorkEnd:         cfg.WorkEndTime,
			DefaultDuration: cfg.DefaultDurationMinutes,
			Recorder:        recorder,
		},
	)

	worker, err := cron.InitWorker(archive, scheduleService)
	if err != nil {
		logger.Error("serve: background worker disabled", zap.Error(err))
	}
	defer worker.Shutdown()

	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("serve: failed to parse templates: %w", err)
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewScheduleHandler(scheduleService, scheduleService.DefaultDuration(), cfg.MaxUploadMB),
		handlers.NewWebHandler(scheduleService, scheduleService.DefaultDuration(), cfg.MaxUploadMB),
		handlers.NewStorageHandler(archive),
		handlers.NewHealthHandler(),
	)
	handlerBundle.JWTSecret = cfg.JWTSecret
	handlerBundle.MaxRequestsPerMin = cfg.MaxRequestsPerMin
	handlerBundle.Templates = tmpl
	if appMetrics != nil {
		handlerBundle.MetricsHandler = gin.WrapH(appMetrics.Handler())
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLoggerMiddleware(logger))
	if appMetrics != nil {
		router.Use(appMetrics.Middleware())
	}
	router.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("serve: server failed to start: %w", err)
	}
	logger.Sugar().Info("serve: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("serve: server forced to shutdown: %w", err)
	}
	if err := database.Disconnect(shutdownCtx); err != nil {
		logger.Warn("serve: mongo disconnect failed", zap.Error(err))
	}

	logger.Sugar().Info("serve: server stopped gracefully")
	return nil
}
