package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phanxgames/morphic"
)

// loadConfig resolves the engine config and applies the global flags.
func loadConfig() (morphic.Config, error) {
	cfg, err := morphic.LoadConfig(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger builds the process logger from the config.
func newLogger(cfg morphic.Config) *slog.Logger {
	level, err := morphic.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return morphic.NewLogger(level)
}

// attachMetrics registers the world's collectors and, when an address is
// given, serves them in the background.
func attachMetrics(w *morphic.World, logger *slog.Logger) {
	if flagMetricsAddr == "" {
		return
	}
	reg := prometheus.NewRegistry()
	w.SetMetrics(morphic.NewMetrics(reg))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		logger.Info("serving metrics", "addr", flagMetricsAddr)
		if err := http.ListenAndServe(flagMetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", fmt.Errorf("listen %s: %w", flagMetricsAddr, err))
		}
	}()
}
