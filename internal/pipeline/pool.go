// internal/pipeline/pool.go
package pipeline

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pool runs independent games on a fixed number of workers. The workers
// share nothing but the status log.
type Pool struct {
	workers int
	runner  Runner
	status  *StatusLog
	logger  *logrus.Logger
}

func NewPool(workers int, runner Runner, status *StatusLog, logger *logrus.Logger) (*Pool, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	return &Pool{workers: workers, runner: runner, status: status, logger: logger}, nil
}

// Run plays instances 1 through games. A failed instance is recorded and
// logged without affecting the others; Run only returns an error when ctx
// ends before every instance was started.
func (p *Pool) Run(ctx context.Context, games int, baseSeed uint64) (Summary, error) {
	runID := uuid.New()
	start := time.Now()
	p.logger.WithFields(logrus.Fields{
		"run_id":  runID,
		"games":   games,
		"workers": p.workers,
		"seed":    baseSeed,
	}).Info("Starting worker pool")

	var (
		mu      sync.Mutex
		summary = Summary{Games: games}
	)

	var g errgroup.Group
	g.SetLimit(p.workers)
	for id := 1; id <= games; id++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := runSafely(ctx, p.runner, id, SeedFor(baseSeed, id))
			if err := p.status.Record(res); err != nil {
				p.logger.WithFields(logrus.Fields{
					"instance_id": id,
					"error":       err,
				}).Error("Failed to write status line")
			}
			logResult(p.logger, runID, res)

			mu.Lock()
			summary.add(res)
			mu.Unlock()
			return nil
		})
	}
	// Workers report failures through their Result and always return nil.
	_ = g.Wait()

	slices.SortFunc(summary.Results, func(a, b Result) int { return a.InstanceID - b.InstanceID })
	summary.Duration = time.Since(start)
	logSummary(p.logger, runID, "pool", summary)
	return summary, ctx.Err()
}
