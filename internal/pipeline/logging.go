// internal/pipeline/logging.go
package pipeline

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/scopa/internal/rating"
	"github.com/sirupsen/logrus"
)

// logResult logs the outcome of one instance.
func logResult(logger *logrus.Logger, runID uuid.UUID, r Result) {
	fields := logrus.Fields{
		"run_id":      runID,
		"instance_id": r.InstanceID,
		"game_id":     r.GameID,
		"seed":        r.Seed,
		"duration":    r.Duration,
	}
	if r.Err != nil {
		fields["error"] = r.Err
		logger.WithFields(fields).Warn("Game failed")
		return
	}
	fields["scores"] = r.Scores
	fields["winner"] = r.Winner
	logger.WithFields(fields).Debug("Game completed")
}

// logSummary logs the tally of a finished batch.
func logSummary(logger *logrus.Logger, runID uuid.UUID, mode string, s Summary) {
	fields := logrus.Fields{
		"run_id":    runID,
		"mode":      mode,
		"games":     s.Games,
		"completed": s.Completed,
		"failed":    s.Failed,
		"duration":  s.Duration,
	}
	if mode == "pipeline" {
		fields["analyzed"] = s.Analyzed
		fields["analysis_failed"] = s.AnalysisFailed
	}
	logger.WithFields(fields).Info("Batch finished")
}

// LogStandings logs one line per rated contestant.
func LogStandings(logger *logrus.Logger, ratings *rating.Ratings) {
	for _, st := range ratings.Standings() {
		logger.WithFields(logrus.Fields{
			"contestant": st.Name,
			"elo":        int(st.Elo + 0.5),
			"rd":         int(st.RD + 0.5),
			"games":      st.Games,
		}).Info("Rating")
	}
}
