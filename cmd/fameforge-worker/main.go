package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fameforge/internal/config"
	"fameforge/internal/db"
	"fameforge/internal/game"
)

// The worker is the real-time clock: every tick it advances one week for
// every save that opted into auto-advance.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWorkerFromEnv()
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

	svc := game.NewService(pool, logger, game.NewEngine(bal, nil))
	if err := svc.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("FAME_WORKER_RUN_ONCE")), "true")
	if runOnce {
		if err := advanceAll(ctx, svc, logger); err != nil {
			logger.Error("advance failed", "err", err)
			os.Exit(1)
		}
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.TurnEvery)
	defer ticker.Stop()

	logger.Info("worker started", "turn_every", cfg.TurnEvery.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			if err := advanceAll(ctx, svc, logger); err != nil {
				logger.Error("advance pass failed", "err", err)
				continue
			}
		}
	}
}

func advanceAll(ctx context.Context, svc *game.Service, logger *slog.Logger) error {
	ids, err := svc.ListAutoAdvance(ctx)
	if err != nil {
		return err
	}
	advanced := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := svc.AdvanceTurn(ctx, id); err != nil {
			// One broken save must not stall the rest of the fleet.
			logger.Error("auto advance failed", "user_id", id, "err", err)
			continue
		}
		advanced++
	}
	logger.Info("advance pass complete", "saves", len(ids), "advanced", advanced)
	return nil
}
