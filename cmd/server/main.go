package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cicd-demo/board-service/internal/application"
	"github.com/cicd-demo/board-service/internal/config"
	"github.com/cicd-demo/board-service/internal/directions"
	"github.com/cicd-demo/board-service/internal/domain/route"
	boardEvents "github.com/cicd-demo/board-service/internal/events"
	"github.com/cicd-demo/board-service/internal/handler"
	"github.com/cicd-demo/board-service/internal/platform/database"
	"github.com/cicd-demo/board-service/internal/platform/kafka"
	"github.com/cicd-demo/board-service/internal/platform/logger"
	"github.com/cicd-demo/board-service/internal/repository"
)

const serviceName = "board-service"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.FromServiceConfig(cfg.DBConfig, !cfg.IsProduction())
	db, err := database.Connect(ctx, dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if !cfg.IsProduction() {
		if err := db.AutoMigrate(&repository.MessageModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize event publisher
	var publisher application.EventPublisher = application.NopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		producer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = producer.Close() }()
		publisher = producer
	} else {
		log.Info("kafka brokers not configured, events disabled")
	}

	// Initialize message service
	messageRepo := repository.NewGormMessageRepository(db, cfg.DBConfig.QueryTimeout)
	messageService := application.NewMessageService(messageRepo, publisher, log)

	// Start the ingest consumer in a goroutine
	if cfg.KafkaConfig.Enabled() {
		groupID := cfg.KafkaConfig.GroupPrefix + "ingest"
		ingestConsumer := boardEvents.NewMessageIngestConsumer(
			cfg.KafkaConfig.Brokers,
			groupID,
			messageService,
			log,
		)
		defer func() { _ = ingestConsumer.Close() }()

		go func() {
			log.Info("starting message ingest consumer", zap.String("group", groupID))
			if err := ingestConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("message ingest consumer error", zap.Error(err))
			}
		}()
	}

	// Initialize route planner
	policy, err := application.ParseFailurePolicy(cfg.MapsConfig.FailurePolicy)
	if err != nil {
		log.Fatal("invalid route failure policy", zap.Error(err))
	}
	var directionsClient directions.Client
	if cfg.MapsConfig.APIKey != "" {
		directionsClient = directions.NewGoogleClient(
			cfg.MapsConfig.BaseURL,
			cfg.MapsConfig.APIKey,
			cfg.MapsConfig.RequestTimeout,
			log,
		)
	} else {
		log.Warn("GOOGLE_MAPS_API_KEY not set, route planning unavailable")
	}
	routePlanner := application.NewRoutePlanner(
		directionsClient,
		route.SeoulTour(),
		application.RoutePlannerConfig{
			SegmentDelay:  cfg.MapsConfig.SegmentDelay,
			FailurePolicy: policy,
		},
		publisher,
		log,
	)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(
		log,
		cfg.FrontendURL,
		handler.NewMessageHandler(messageService),
		handler.NewRouteHandler(routePlanner),
	)

	// A full plan makes one request per leg plus a pause between legs.
	writeTimeout := 15*time.Second + time.Duration(len(route.SeoulTour()))*(cfg.MapsConfig.SegmentDelay+cfg.MapsConfig.RequestTimeout)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Info(serviceName + " stopped")
}
