package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"

	"badtakes/internal/cache"
	"badtakes/internal/config"
	"badtakes/internal/db"
	"badtakes/internal/email"
	"badtakes/internal/intake"
	"badtakes/internal/jobs"
	"badtakes/internal/metrics"
	"badtakes/internal/pricing"
	"badtakes/internal/ratelimit"
	"badtakes/internal/server"
	"badtakes/internal/storage"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Blob storage
	blobs, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	// Shared cache: Redis when configured, otherwise in-process
	var store cache.Cache
	if cfg.RedisURL != "" {
		store = cache.NewFiberStore(redis.New(redis.Config{URL: cfg.RedisURL}))
		log.Println("Using Redis cache backend")
	} else {
		store = cache.NewMemory()
	}

	limiter := ratelimit.New(store, cfg.SubmissionRateLimit, cfg.SubmissionRateWindow)
	pipeline := intake.New(limiter, blobs, database)

	oracle := pricing.NewCoinGecko(cfg.PriceOracleURL)
	prices := pricing.NewService(oracle, store, cfg.PriceCacheTTL)

	notifier := email.NewNotifier(cfg)

	metrics.Init(database)

	// Orphan blob sweeper
	if cfg.SweepInterval > 0 {
		sweeper := jobs.NewSweeper(database, blobs, cfg.SweepInterval, cfg.SweepMinAge)
		go sweeper.Start(ctx)
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, blobs, pipeline, prices, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
