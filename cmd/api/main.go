// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/Pratyasha-Tapaja/cbpmodel/internal/config"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/http/routes"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/model"
	"github.com/Pratyasha-Tapaja/cbpmodel/internal/prediction"
)

func main() {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger = logger.Level(cfg.Level())
	if cfg.LogPretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// Model, loaded once and shared read-only by every request
	m, err := model.Load(cfg.Model.Type, cfg.Model.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("model load failed")
	}
	logger.Info().Str("type", cfg.Model.Type).Str("path", cfg.Model.Path).Msg("model loaded")

	// Router / server
	s := routes.New(routes.ServerOptions{
		Logger:         logger,
		Predictions:    prediction.NewService(m),
		MetricsEnabled: cfg.MetricsEnabled,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting app")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownCh

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
	logger.Info().Msg("stopped")
}
