package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/fullstackquiz/quiz-service/internal/config"
	"github.com/fullstackquiz/quiz-service/internal/events"
	"github.com/fullstackquiz/quiz-service/internal/handlers"
	"github.com/fullstackquiz/quiz-service/internal/repositories/memory"
	"github.com/fullstackquiz/quiz-service/internal/services"
	"github.com/fullstackquiz/quiz-service/internal/utils"
	"github.com/fullstackquiz/quiz-service/internal/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	// Question banks are loaded once; the store is immutable afterwards.
	// Load failures degrade topics to empty rather than aborting startup.
	manifest, err := memory.LoadManifest(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to read topic manifest, using conventional layout", "error", err)
	}
	if manifest == nil {
		manifest = memory.DefaultManifest(cfg.Technologies)
	}
	store := memory.NewLoader(cfg.DataDir, slogger, validator.New()).LoadStore(manifest)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if channelPublisher, ok := publisher.(*events.ChannelEventPublisher); ok {
		messages, err := channelPublisher.Subscribe(ctx)
		if err != nil {
			logger.Error("Failed to subscribe to quiz events", "error", err)
			os.Exit(1)
		}
		go logQuizEvents(messages, slogger)
	}

	quizService := services.NewQuizService(store, slogger, publisher, nil)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(cors.Default()) // the SPA may be served from another origin

	handlers.NewHandlerManager(quizService, store, cfg, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting quiz service",
			"port", cfg.Port,
			"environment", cfg.Environment,
			"topics", store.Topics())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down quiz service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// logQuizEvents drains the in-process event stream into the audit log.
func logQuizEvents(messages <-chan *message.Message, logger *slog.Logger) {
	for msg := range messages {
		logger.Info("Quiz event",
			"event_id", msg.UUID,
			"event_type", msg.Metadata.Get("event_type"),
			"payload", string(msg.Payload))
		msg.Ack()
	}
}
