package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	RedisAddr     string
	Port          string
	WebhookURL    string
	LogsDirectory string
	SeedPath      string

	// Decoder settings handed to scan clients.
	ScanFPS            int
	ScanDetectionBoxPx int
	ScanDebounce       time.Duration

	// Confirmations without a captured signature are rejected when set.
	RequireSignature bool

	FeedRefreshEvery time.Duration
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local runs.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RedisAddr:          Get("REDIS_ADDR", "localhost:6379"),
		Port:               Get("PORT", "8080"),
		WebhookURL:         os.Getenv("WEBHOOK_URL"),
		LogsDirectory:      os.Getenv("LOGS_DIRECTORY"),
		SeedPath:           Get("SEED_PATH", "data/seeds/condo.json"),
		ScanFPS:            GetInt("SCAN_FPS", 10),
		ScanDetectionBoxPx: GetInt("SCAN_BOX_PX", 250),
		ScanDebounce:       GetDuration("SCAN_DEBOUNCE", 2*time.Second),
		RequireSignature:   GetBool("REQUIRE_SIGNATURE", true),
		FeedRefreshEvery:   GetDuration("FEED_REFRESH_EVERY", 30*time.Second),
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
