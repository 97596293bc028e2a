package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/combat-engine/internal/arena"
	"github.com/jwebster45206/combat-engine/internal/config"
	"github.com/jwebster45206/combat-engine/internal/events"
	"github.com/jwebster45206/combat-engine/internal/logger"
	"github.com/jwebster45206/combat-engine/internal/queue"
	"github.com/jwebster45206/combat-engine/internal/storage"
	"github.com/jwebster45206/combat-engine/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting combat engine",
		"environment", cfg.Environment,
		"redis_url", cfg.RedisURL,
		"data_dir", cfg.DataDir)

	// Initialize storage service
	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	sheets, err := store.ListSheets(storageCtx)
	if err != nil {
		log.Error("Failed to list sheets", "error", err)
		os.Exit(1)
	}
	log.Info("Storage service initialized successfully", "sheets", len(sheets))

	// Initialize queue service
	queueClient, err := queue.NewClient(storageCtx, cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create queue client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := queueClient.Close(); err != nil {
			log.Error("Error closing queue client", "error", err)
		}
	}()
	intents := queue.NewIntentQueue(queueClient)

	broadcaster := events.NewBroadcaster(store.Client(), log)

	manager, err := arena.NewManager(store, cfg.Timing(), log,
		arena.WithSink(broadcaster),
		arena.WithPublisher(broadcaster),
	)
	if err != nil {
		log.Error("Failed to create arena", "error", err)
		os.Exit(1)
	}

	restored, err := manager.Restore(storageCtx)
	if err != nil {
		log.Error("Failed to restore sessions", "error", err)
		os.Exit(1)
	}
	log.Info("Arena initialized", "restored_sessions", restored)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		if err := manager.Run(ctx); err != nil {
			log.Error("Ticker error", "error", err)
		}
	}()

	w := worker.New(intents, manager, broadcaster, queueClient.GetRedisClient(), log, cfg.WorkerID)
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := w.Start(); err != nil {
			log.Error("Worker error", "error", err)
		}
	}()

	log.Info("Combat engine started, waiting for intents...")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info("Shutdown signal received")

	w.Stop()
	<-tickerDone
	<-workerDone

	log.Info("Combat engine exited")
}
