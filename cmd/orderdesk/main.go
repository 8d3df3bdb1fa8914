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

	"golang.org/x/sync/errgroup"

	"github.com/teamorders/orderdesk/internal/api"
	"github.com/teamorders/orderdesk/internal/infrastructure/config"
	redisdb "github.com/teamorders/orderdesk/internal/infrastructure/db/redis"
	"github.com/teamorders/orderdesk/internal/infrastructure/db/sheets"
	"github.com/teamorders/orderdesk/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := sheets.Connect(ctx, sheets.Config{
		BaseURL:    cfg.Sheets.BaseURL,
		DocumentID: cfg.Sheets.DocumentID,
		APIToken:   cfg.Sheets.APIToken,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("spreadsheet connection failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	e, err := api.NewRouter(ctx, cfg, log, doc, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting orderdesk server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("application terminated with error")
	}
}
