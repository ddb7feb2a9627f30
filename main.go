package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surgewatch/internal/agent"
	"surgewatch/internal/api"
	"surgewatch/internal/config"
	"surgewatch/internal/db"
	"surgewatch/internal/engine"
	"surgewatch/internal/history"
	"surgewatch/internal/logging"
	"surgewatch/internal/notifier"
	"surgewatch/internal/scheduler"
	"surgewatch/internal/summarizer"
	"surgewatch/internal/weather"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config load failed:", err)
	}

	// Initialize logger
	logger := logging.New()

	// Optional Postgres store
	var store *db.DB
	if cfg.DB.DSN != "" {
		store, err = db.New(cfg.DB.DSN)
		if err != nil {
			logger.Errorf("Database init failed, continuing without persistence: %v", err)
		} else {
			defer store.Close()
		}
	}

	// History providers
	provider := &history.Composite{
		Uploads:   history.NewUploadStore(),
		Simulator: history.NewSimulator(),
	}
	if store != nil {
		provider.Store = store
	}

	// Core engine and agent
	thresholds := engine.DefaultThresholds()
	registry := agent.NewRegistry()
	ag := agent.New(thresholds, registry)
	forecaster := engine.NewForecaster(thresholds)

	// Integrations
	weatherClient := weather.NewClient(cfg.Weather.APIKey, logger)
	summ := summarizer.New(cfg.OpenAI.APIKey, logger)

	hub := notifier.NewHub(logger)
	var telegram *notifier.TelegramSender
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		telegram, err = notifier.NewTelegramSender(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Errorf("Telegram init failed, continuing without it: %v", err)
		}
	}
	var kafkaPub *notifier.KafkaPublisher
	if cfg.Kafka.Broker != "" {
		kafkaPub = notifier.NewKafkaPublisher(cfg.Kafka.Broker, cfg.Kafka.Topic)
		defer kafkaPub.Close()
	}
	notif := notifier.New(hub, telegram, kafkaPub, logger)

	// Periodic autonomous runs
	if cfg.Agent.Cron != "" {
		sched := scheduler.New(cfg.Agent.HospitalIDs, func(ctx context.Context, hospitalID string) error {
			series, err := provider.Series(ctx, hospitalID, 30)
			if err != nil {
				return err
			}
			result, err := ag.Run(hospitalID, series, cfg.Agent.Autonomous)
			if err != nil {
				return err
			}
			notif.NotifyRun(ctx, result)
			return nil
		}, logger)
		if err := sched.Start(cfg.Agent.Cron); err != nil {
			logger.Errorf("Scheduler init failed: %v", err)
		} else {
			defer sched.Stop()
		}
	}

	// HTTP server
	handler := api.NewHandler(cfg, provider, store, forecaster, ag, summ, weatherClient, notif, logger)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:    cfg.API.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("SurgeWatch listening on %s", cfg.API.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Server failed: %v", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
