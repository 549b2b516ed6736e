// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `validate:"required,numeric"`
	DBPath         string        `validate:"required"`
	PredictURL     string        `validate:"required,url"`
	PredictTimeout time.Duration `validate:"gte=0"`
	HistoryLimit   int           `validate:"gte=0"`
}

// Load reads .env (when present) and then the environment. Unset values
// fall back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("error loading .env file", "err", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:       getOr(getenv, "PORT", "8080"),
		DBPath:     getOr(getenv, "DB_PATH", "attrition.db"),
		PredictURL: getOr(getenv, "PREDICT_URL", "http://127.0.0.1:5000/predict"),
	}

	timeout, err := time.ParseDuration(getOr(getenv, "PREDICT_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("PREDICT_TIMEOUT: %w", err)
	}
	cfg.PredictTimeout = timeout

	limit, err := strconv.Atoi(getOr(getenv, "HISTORY_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("HISTORY_LIMIT: %w", err)
	}
	cfg.HistoryLimit = limit

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getOr(getenv func(string) string, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
