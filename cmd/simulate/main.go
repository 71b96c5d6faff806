// cmd/simulate runs many independent games on a worker pool and records one
// status line per game.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/jason-s-yu/scopa/internal/config"
	"github.com/jason-s-yu/scopa/internal/historian"
	"github.com/jason-s-yu/scopa/internal/pipeline"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	games := flag.Int("games", cfg.Games, "number of games to play")
	workers := flag.Int("workers", cfg.Workers, "number of concurrent games")
	seed := flag.Uint64("seed", cfg.Seed, "base seed (0 picks one from the clock)")
	flag.Parse()
	cfg.Games, cfg.Workers, cfg.Seed = *games, *workers, *seed
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	logger := cfg.NewLogger()

	runner, err := newRunner(cfg)
	if err != nil {
		logger.Fatalf("failed to set up runner: %v", err)
	}
	status, err := pipeline.OpenStatusLog(cfg.StatusLog)
	if err != nil {
		logger.Fatalf("failed to open status log: %v", err)
	}
	pool, err := pipeline.NewPool(cfg.Workers, runner, status, logger)
	if err != nil {
		logger.Fatalf("failed to create pool: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := pool.Run(ctx, cfg.Games, cfg.BaseSeed())
	if err != nil {
		logger.WithError(err).Warn("Interrupted")
	}
	logger.Infof("%d of %d games completed, status in %s", summary.Completed, summary.Games, status.Path())
	pipeline.LogStandings(logger, summary.Rate(cfg.Policy1, cfg.Policy2))
}

// newRunner plays games in child processes when a game binary is
// configured, in-process otherwise.
func newRunner(cfg config.Config) (pipeline.Runner, error) {
	store, err := historian.NewStore(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	if cfg.GameBinary != "" {
		return &pipeline.ExecRunner{Binary: cfg.GameBinary, Store: store}, nil
	}
	p1, p2, err := cfg.Policies()
	if err != nil {
		return nil, err
	}
	return &pipeline.GameRunner{Rules: cfg.Rules, Store: store, Policy1: p1, Policy2: p2}, nil
}
