package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything the gateway and events binaries read from the
// environment.
type Config struct {
	// HTTPPort is the gateway listen port.
	HTTPPort string

	// BackendURL is the upstream Clapo REST API base URL.
	BackendURL string

	// BackendToken is the bearer token for the upstream API.
	BackendToken string

	// AuraURL is the Aura reward service base URL.
	AuraURL string

	// ChainURL is the token-mint relay base URL.
	ChainURL string

	// StreamURL is the upstream push stream WebSocket endpoint.
	StreamURL string

	// RedisURI is the pub/sub and ratelimit Redis.
	RedisURI string

	// SentryDSN enables error capture when set.
	SentryDSN string

	// RequestTimeout bounds every remote call. Engagement calls that hit
	// it roll back like any other failure.
	RequestTimeout time.Duration

	// WalletConnected seeds the mint precondition for this deployment.
	WalletConnected bool
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:       "3000",
		RedisURI:       "redis://localhost:6379",
		RequestTimeout: 15 * time.Second,
	}

	if p := os.Getenv("HTTP_PORT"); p != "" {
		cfg.HTTPPort = p
	}

	cfg.BackendURL = os.Getenv("CLAPO_API_URL")
	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("CLAPO_API_URL is required")
	}
	cfg.BackendToken = os.Getenv("CLAPO_API_TOKEN")

	cfg.AuraURL = os.Getenv("AURA_API_URL")
	if cfg.AuraURL == "" {
		return nil, fmt.Errorf("AURA_API_URL is required")
	}

	cfg.ChainURL = os.Getenv("CHAIN_API_URL")
	if cfg.ChainURL == "" {
		return nil, fmt.Errorf("CHAIN_API_URL is required")
	}

	cfg.StreamURL = os.Getenv("CLAPO_STREAM_URL")

	if uri := os.Getenv("REDIS_URI"); uri != "" {
		cfg.RedisURI = uri
	}

	cfg.SentryDSN = os.Getenv("SENTRY_DSN")

	if t := os.Getenv("REQUEST_TIMEOUT_SECONDS"); t != "" {
		secs, err := strconv.Atoi(t)
		if err != nil {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %w", err)
		}
		cfg.RequestTimeout = time.Duration(secs) * time.Second
	}

	cfg.WalletConnected = os.Getenv("WALLET_CONNECTED") == "true"

	return cfg, nil
}
