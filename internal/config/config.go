package config

import (
	"esports-tracker/internal/constants"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath       string
	ServerPort   string
	LogLevel     string
	CORSOrigins  []string
	TrackerURL   string
	PollInterval time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "esports.db"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		TrackerURL:  strings.TrimRight(getEnv("TRACKER_URL", "http://localhost:8080"), "/"),
	}

	interval, err := time.ParseDuration(getEnv("POLL_INTERVAL", constants.DefaultPollInterval.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", interval)
	}
	cfg.PollInterval = interval

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Strs("cors_origins", cfg.CORSOrigins).
		Str("tracker_url", cfg.TrackerURL).
		Dur("poll_interval", cfg.PollInterval).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var Module = fx.Provide(fx.Annotate(Load, fx.ParamTags(`name:"bootstrap"`)))
