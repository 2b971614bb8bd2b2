package main

import (
	"log"
	"net/http"
	"time"

	"github.com/clapo-social/client-core/pkg/api/rest"
	v0_rest "github.com/clapo-social/client-core/pkg/api/rest/v0"
	"github.com/clapo-social/client-core/pkg/aura"
	"github.com/clapo-social/client-core/pkg/backend"
	"github.com/clapo-social/client-core/pkg/chain"
	"github.com/clapo-social/client-core/pkg/config"
	"github.com/clapo-social/client-core/pkg/engagement"
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

	// Init Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn: cfg.SentryDSN,
	}); err != nil {
		panic(err)
	}

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

	// Wire service clients
	backendClient := backend.NewClient(cfg.BackendURL, cfg.BackendToken, cfg.RequestTimeout)
	auraClient := aura.NewClient(cfg.AuraURL, cfg.RequestTimeout)
	chainClient := chain.NewClient(cfg.ChainURL, cfg.RequestTimeout)
	notifier := notifications.NewRedisNotifier(logger)

	registry := engagement.NewRegistry(backendClient, backendClient, notifier, logger)

	deps := &v0_rest.Deps{
		Registry: registry,
		Backend:  backendClient,
		Aura:     auraClient,
		Chain:    chainClient,
		Wallet:   &chain.StaticWallet{IsConnected: cfg.WalletConnected},
		Notifier: notifier,
		Logger:   logger,
	}

	// Serve HTTP router
	log.Println("Serving HTTP server on :" + cfg.HTTPPort)
	http.ListenAndServe(":"+cfg.HTTPPort, rest.Router(deps))

	// Wait for Sentry events to flush
	sentry.Flush(time.Second * 5)
}
