// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/scopa/internal/historian"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Pipeline overlaps simulation and analysis: a producer plays each instance
// and publishes its Result into a bounded Buffer, and a consumer takes
// results in order and analyzes the successful ones. The producer blocks
// once the consumer falls BufferSize results behind.
type Pipeline struct {
	runner     Runner
	analyzer   *historian.Analyzer
	status     *StatusLog
	bufferSize int
	logger     *logrus.Logger
}

func NewPipeline(runner Runner, analyzer *historian.Analyzer, status *StatusLog, bufferSize int, logger *logrus.Logger) (*Pipeline, error) {
	if bufferSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, bufferSize)
	}
	return &Pipeline{
		runner:     runner,
		analyzer:   analyzer,
		status:     status,
		bufferSize: bufferSize,
		logger:     logger,
	}, nil
}

// Run plays and analyzes instances 1 through games. Per-instance failures
// of either stage are counted, not returned; an error means ctx ended early.
func (p *Pipeline) Run(ctx context.Context, games int, baseSeed uint64) (Summary, error) {
	runID := uuid.New()
	start := time.Now()
	p.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"games":  games,
		"buffer": p.bufferSize,
		"seed":   baseSeed,
	}).Info("Starting pipeline")

	buf, err := NewBuffer[Result](p.bufferSize)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Games: games}
	g, ctx := errgroup.WithContext(ctx)

	// producer
	g.Go(func() error {
		for id := 1; id <= games; id++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := runSafely(ctx, p.runner, id, SeedFor(baseSeed, id))
			if err := p.status.Record(res); err != nil {
				p.logger.WithFields(logrus.Fields{
					"instance_id": id,
					"error":       err,
				}).Error("Failed to write status line")
			}
			logResult(p.logger, runID, res)
			if err := buf.Put(ctx, res); err != nil {
				return err
			}
		}
		return nil
	})

	// consumer; the only writer of summary until Wait returns
	g.Go(func() error {
		for i := 0; i < games; i++ {
			res, err := buf.Take(ctx)
			if err != nil {
				return err
			}
			summary.add(res)
			if !res.OK() {
				continue
			}
			if _, err := p.analyzer.Process(ctx, res.InstanceID); err != nil {
				summary.AnalysisFailed++
				p.logger.WithFields(logrus.Fields{
					"run_id":      runID,
					"instance_id": res.InstanceID,
					"error":       err,
				}).Warn("Analysis failed")
				continue
			}
			summary.Analyzed++
		}
		return nil
	})

	err = g.Wait()
	summary.Duration = time.Since(start)
	logSummary(p.logger, runID, "pipeline", summary)
	return summary, err
}
