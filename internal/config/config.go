package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries process-level settings. Upstream address and credentials are
// per-request concerns and deliberately not part of it; DefaultUpstreamURL is
// only used by the readiness probe.
type Config struct {
	ListenAddr string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	UpstreamTimeout time.Duration

	RateBurst  int
	RatePerSec int

	MaxBodyBytes int64

	DefaultUpstreamURL string
}

// Load reads configuration from the environment, after a best-effort .env load.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ListenAddr:         envStr("FORMGATE_ADDR", ":8080"),
		ReadTimeout:        envDuration("FORMGATE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:       envDuration("FORMGATE_WRITE_TIMEOUT", 30*time.Second),
		IdleTimeout:        envDuration("FORMGATE_IDLE_TIMEOUT", 60*time.Second),
		UpstreamTimeout:    envDuration("FORMGATE_UPSTREAM_TIMEOUT", 20*time.Second),
		RateBurst:          envInt("FORMGATE_RATE_BURST", 40),
		RatePerSec:         envInt("FORMGATE_RATE_PER_SEC", 20),
		MaxBodyBytes:       int64(envInt("FORMGATE_MAX_BODY_BYTES", 1<<20)),
		DefaultUpstreamURL: envStr("FORMGATE_ERPNEXT_URL", ""),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
