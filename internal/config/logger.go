package config

import (
	"log/slog"
	"os"
)

// NewLogger devolve um slog.Logger configurado conforme LOG_FORMAT.
func NewLogger(cfg *Config) *slog.Logger {
	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
