package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fameforge/internal/api"
	"fameforge/internal/auth"
	"fameforge/internal/config"
	"fameforge/internal/db"
	"fameforge/internal/game"
	"fameforge/internal/muse"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPIFromEnv()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	bal, err := config.LoadBalance(cfg.BalanceFile)
	if err != nil {
		logger.Error("load balance file failed", "err", err)
		os.Exit(1)
	}

	var rng game.RNG
	if cfg.SeedSet {
		rng = game.NewSeededRNG(cfg.RandomSeed)
	} else {
		rng = game.NewLockedRNG()
	}

	authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	gameSvc := game.NewService(pool, logger, game.NewEngine(bal, rng))
	if err := gameSvc.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	var gen muse.Generator
	if cfg.MuseURL != "" {
		gen = muse.NewHTTPGenerator(cfg.MuseURL)
	} else {
		gen = muse.NewDefaultTemplateGenerator()
	}

	server := api.New(cfg, logger, authClient, gameSvc, gen)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("fameforge api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
