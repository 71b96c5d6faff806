// cmd/scopa plays a single game and writes its action log. The exit code is
// 0 when the game completed and its log was written, 1 otherwise.
package main

import (
	"flag"
	"os"

	"github.com/jason-s-yu/scopa/internal/config"
	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/jason-s-yu/scopa/internal/historian"
	"github.com/jason-s-yu/scopa/internal/pipeline"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.WithError(err).Error("Invalid configuration")
		return 1
	}

	fs := flag.NewFlagSet("scopa", flag.ContinueOnError)
	instanceID := fs.Int("instance_id", 1, "instance id used to name the action log")
	seed := fs.Uint64("seed", 0, "game seed (default: derived from SCOPA_SEED and the instance id)")
	logDir := fs.String("log_dir", cfg.LogDir, "directory for the action log")
	policy1 := fs.String("policy1", cfg.Policy1, "player 1 policy: random, greedy or first")
	policy2 := fs.String("policy2", cfg.Policy2, "player 2 policy: random, greedy or first")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := cfg.NewLogger()
	cfg.Policy1, cfg.Policy2 = *policy1, *policy2
	p1, p2, err := cfg.Policies()
	if err != nil {
		logger.WithError(err).Error("Invalid policy")
		return 1
	}

	if *seed == 0 {
		*seed = pipeline.SeedFor(cfg.Seed, *instanceID)
	}

	store, err := historian.NewStore(*logDir)
	if err != nil {
		logger.WithError(err).Error("Failed to open log store")
		return 1
	}

	g := game.NewGame(*seed, cfg.Rules)
	if p1 != nil {
		g.SetPolicy(1, p1)
	}
	if p2 != nil {
		g.SetPolicy(2, p2)
	}

	entry := logger.WithFields(logrus.Fields{
		"instance_id": *instanceID,
		"game_id":     g.ID,
		"seed":        *seed,
	})

	o, err := g.Play()
	if err != nil {
		entry.WithError(err).Error("Game aborted")
		return 1
	}
	if err := store.SaveGameLog(*instanceID, g.Records()); err != nil {
		entry.WithError(err).Error("Failed to write action log")
		return 1
	}

	for i, b := range o.Breakdown {
		entry.WithFields(logrus.Fields{
			"player":        i + 1,
			"most_cards":    b.MostCards,
			"sette_bello":   b.SetteBello,
			"most_diamonds": b.MostDiamonds,
			"primiera":      b.Primiera,
			"scopas":        b.Scopas,
			"total":         b.Total,
		}).Info("Score")
	}
	entry.WithFields(logrus.Fields{
		"winner":  o.Winner,
		"actions": len(g.Records()),
		"log":     store.GameLogPath(*instanceID),
	}).Info("Game completed")
	return 0
}
