package main

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"devevent-backend/internal/config"
	"devevent-backend/internal/infrastructure/queue"
)

// Config là phần config riêng của worker, phần chung lấy từ container
type Config struct {
	RedisAddr       string
	RedisPassword   string
	Concurrency     int
	WarmFeedCron    string
	HealthAddr      string
	ShutdownTimeout time.Duration
}

// loadConfig đọc config worker từ app config + environment variables
func loadConfig(appCfg *config.Config) *Config {
	cfg := &Config{
		RedisAddr:       appCfg.Queue.RedisAddr,
		RedisPassword:   appCfg.Redis.Password,
		Concurrency:     appCfg.Queue.Concurrency,
		WarmFeedCron:    getEnv("WORKER_WARM_FEED_CRON", queue.DefaultWarmFeedCron),
		HealthAddr:      getEnv("WORKER_HEALTH_ADDR", ":9999"),
		ShutdownTimeout: 30 * time.Second,
	}

	if raw := os.Getenv("WORKER_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			cfg.ShutdownTimeout = d
		}
	}

	log.Info().
		Str("redis", cfg.RedisAddr).
		Int("concurrency", cfg.Concurrency).
		Str("warm_feed_cron", cfg.WarmFeedCron).
		Msg("[Config] Worker configuration loaded")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
