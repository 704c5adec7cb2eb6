// Command console runs the publisher console's session manager behind a
// small HTTP API.
//
// @title        Publisher Console API
// @version      1.0
// @description  Session management for the mobile publisher admin console.
// @host         localhost:8090
// @BasePath     /
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mobilepub/publisher-console/internal/api"
	"github.com/mobilepub/publisher-console/internal/api/metrics"
	"github.com/mobilepub/publisher-console/internal/core/ports"
	"github.com/mobilepub/publisher-console/internal/core/service"
	"github.com/mobilepub/publisher-console/internal/i18n"
	"github.com/mobilepub/publisher-console/internal/infrastructure/authapi"
	"github.com/mobilepub/publisher-console/internal/infrastructure/db/file"
	"github.com/mobilepub/publisher-console/internal/infrastructure/db/mongo"
	"github.com/mobilepub/publisher-console/internal/infrastructure/db/postgres"
	"github.com/mobilepub/publisher-console/internal/infrastructure/db/redis"
	httpserver "github.com/mobilepub/publisher-console/internal/infrastructure/http"
	"github.com/mobilepub/publisher-console/internal/pkg/config"
	"github.com/mobilepub/publisher-console/pkg/logger"
)

func main() {
	// Best effort: real environment variables win when there is no .env.
	_ = godotenv.Load(".env")

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("console stopped")
	}
	log.Info().Msg("goodbye")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info().Str("store", cfg.Session.Store).Msg("session store ready")

	var demo *service.DemoCredentials
	if cfg.Demo.Enabled {
		demo, err = service.NewDemoCredentials(cfg.Demo.Username, cfg.Demo.Password)
		if err != nil {
			return fmt.Errorf("demo credentials: %w", err)
		}
	}

	loc := i18n.New(cfg.Locale)
	client := authapi.NewClient(cfg.AuthAPI.URL, cfg.AuthAPI.Timeout)
	sessions := service.NewSessionManager(store, client, demo, loc, logger.Component("session"))
	sessions.Subscribe(metrics.ObserveSession)

	e := api.NewRouter(api.Deps{
		Sessions:       sessions,
		Store:          store,
		StoreName:      cfg.Session.Store,
		Localizer:      loc,
		Log:            logger.Component("api"),
		DemoEnabled:    cfg.Demo.Enabled,
		LoginPerMinute: cfg.Login.PerMinute,
		LoginBurst:     cfg.Login.Burst,
	})

	// Guarded routes answer 503 until this finishes.
	go func() {
		s := sessions.Resolve(ctx)
		log.Info().Str("phase", string(s.Phase())).Msg("session resolved")
	}()

	return httpserver.Serve(ctx, e, ":"+cfg.Port, log)
}

// openStore connects the SESSION_STORE backend and returns its closer.
func openStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redis.NewSessionStore(client, cfg.Redis.Prefix), func() { _ = client.Close() }, nil

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		return mongo.NewSessionStore(db, ""), func() { _ = client.Disconnect(context.Background()) }, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewSessionStore(db, "")
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	default:
		return file.NewSessionStore(cfg.Session.File), func() {}, nil
	}
}
