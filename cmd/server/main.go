package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/zodiac-catalog/internal/api"
	"github.com/dom/zodiac-catalog/internal/config"
	"github.com/dom/zodiac-catalog/internal/repository"
	"github.com/dom/zodiac-catalog/internal/repository/memory"
	"github.com/dom/zodiac-catalog/internal/repository/postgres"
	repoRedis "github.com/dom/zodiac-catalog/internal/repository/redis"
	"github.com/dom/zodiac-catalog/internal/service"
	"github.com/dom/zodiac-catalog/internal/telemetry"
	"github.com/dom/zodiac-catalog/internal/websocket"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"
)

const serviceName = "zodiac-catalog"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("Server stopped")
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.EnableTrace {
		cleanup, err := telemetry.SetupTracing(ctx, cfg.TraceEndpoint, serviceName, cfg.ServiceVersion)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
		defer cleanup()
	}

	// Initialize store
	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	defer closeStore()

	// Initialize WebSocket hub
	hub := websocket.NewHub()

	// Initialize services
	services := service.NewServices(repos, hub)
	metrics := telemetry.NewMetrics(services.Character)

	// Initialize router
	router := api.NewRouter(services, hub, metrics, cfg)

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run()
		return nil
	})

	g.Go(func() error {
		log.Printf("Server starting on port %s (store: %s, environment: %s)", cfg.Port, cfg.StoreBackend, cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		hub.Stop()
		return err
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		logLevel := logger.Warn
		if cfg.IsDevelopment() {
			logLevel = logger.Info
		}

		db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewRepositories(db), func() { sqlDB.Close() }, nil

	case config.BackendRedis:
		client, err := repoRedis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repoRedis.NewRepositories(client), func() { client.Close() }, nil

	default:
		log.Println("Using in-memory store; data is lost on restart")
		return memory.NewRepositories(), func() {}, nil
	}
}
