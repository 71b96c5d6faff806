// cmd/pipeline plays games and analyzes their logs concurrently, with a
// bounded buffer between the simulation and analysis stages.
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
	bufferSize := flag.Int("buffer", cfg.BufferSize, "results buffered between simulation and analysis")
	seed := flag.Uint64("seed", cfg.Seed, "base seed (0 picks one from the clock)")
	flag.Parse()
	cfg.Games, cfg.BufferSize, cfg.Seed = *games, *bufferSize, *seed
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	logger := cfg.NewLogger()

	store, err := historian.NewStore(cfg.LogDir)
	if err != nil {
		logger.Fatalf("failed to open log store: %v", err)
	}
	status, err := pipeline.OpenStatusLog(cfg.StatusLog)
	if err != nil {
		logger.Fatalf("failed to open status log: %v", err)
	}

	var runner pipeline.Runner
	if cfg.GameBinary != "" {
		runner = &pipeline.ExecRunner{Binary: cfg.GameBinary, Store: store}
	} else {
		p1, p2, err := cfg.Policies()
		if err != nil {
			logger.Fatalf("invalid policy: %v", err)
		}
		runner = &pipeline.GameRunner{Rules: cfg.Rules, Store: store, Policy1: p1, Policy2: p2}
	}

	p, err := pipeline.NewPipeline(runner, historian.NewAnalyzer(store, logger), status, cfg.BufferSize, logger)
	if err != nil {
		logger.Fatalf("failed to create pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := p.Run(ctx, cfg.Games, cfg.BaseSeed())
	if err != nil {
		logger.WithError(err).Warn("Interrupted")
	}
	logger.Infof("%d games completed, %d analyzed", summary.Completed, summary.Analyzed)
	pipeline.LogStandings(logger, summary.Rate(cfg.Policy1, cfg.Policy2))
}
