// cmd/analyze combines the logs of every game the status log marks as
// completed into one analysis file.
package main

import (
	"context"
	"flag"

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

	statusPath := flag.String("status", cfg.StatusLog, "status log to scan for completed games")
	out := flag.String("out", cfg.AnalysisLog, "combined analysis output")
	flag.Parse()

	logger := cfg.NewLogger()

	ids, err := pipeline.SuccessfulIDs(*statusPath)
	if err != nil {
		logger.Fatalf("failed to read status log: %v", err)
	}
	store, err := historian.NewStore(cfg.LogDir)
	if err != nil {
		logger.Fatalf("failed to open log store: %v", err)
	}

	n, err := historian.NewAnalyzer(store, logger).ProcessAll(context.Background(), ids, *out)
	if err != nil {
		logger.Fatalf("analysis failed: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"games":   len(ids),
		"actions": n,
		"out":     *out,
	}).Info("Analysis written")
}
