package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/whoknows1409/Finance-Tracker-AI/internal/advisor"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/config"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/database"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/router"
	"github.com/whoknows1409/Finance-Tracker-AI/internal/stock"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// .env is optional, environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("init database")
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("migrate database")
	}

	quotes := stock.NewClient(cfg.Quotes.BaseURL, logger)

	var gen advisor.Generator
	if cfg.AI.APIKey != "" {
		gemini, err := advisor.NewGemini(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.Fatal().Err(err).Msg("init gemini client")
		}
		gen = gemini
	} else {
		logger.Warn().Msg("no Gemini API key configured, AI endpoints run degraded")
	}
	adv := advisor.New(gen, logger)

	r := router.SetupRouter(cfg, db, quotes, adv)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logger.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("serve")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown http server")
	}
	if err := database.Close(db); err != nil {
		logger.Error().Err(err).Msg("close database")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
