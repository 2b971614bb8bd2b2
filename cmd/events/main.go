package main

import (
	"context"
	"log"

	"github.com/clapo-social/client-core/pkg/backend"
	"github.com/clapo-social/client-core/pkg/config"
	"github.com/clapo-social/client-core/pkg/engagement"
	"github.com/clapo-social/client-core/pkg/events"
	"github.com/clapo-social/client-core/pkg/notifications"
	"github.com/clapo-social/client-core/pkg/rdb"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load dotenv
	godotenv.Load()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if cfg.StreamURL == "" {
		log.Fatalln("CLAPO_STREAM_URL is required")
	}

	// Initialise Sentry
	sentry.Init(sentry.ClientOptions{
		Dsn: cfg.SentryDSN,
	})

	// Init logging
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Init Redis
	if err := rdb.Init(cfg.RedisURI); err != nil {
		panic(err)
	}

	// The listener shares the gateway's registry shape but runs its own
	// instance; deltas also fan out over Redis for gateway processes.
	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendToken, cfg.RequestTimeout)
	registry := engagement.NewRegistry(backendClient, backendClient, notifications.NewRedisNotifier(logger), logger)

	subscriber := events.NewSubscriber(cfg.StreamURL, registry, logger)
	if err := subscriber.Start(context.Background()); err != nil {
		log.Fatalln(err)
	}
}
