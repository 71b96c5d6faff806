// internal/historian/analysis.go
package historian

import (
	"context"
	"fmt"
	"time"

	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/jason-s-yu/scopa/internal/models"
	"github.com/sirupsen/logrus"
)

// Row is one action of a game flattened for analysis, with the game's final
// scores repeated on every row.
type Row struct {
	InstanceID      int                  `json:"instance_id"`
	Player          int                  `json:"player"`
	Action          game.ActionKind      `json:"action"`
	Hand            game.Cards           `json:"hand"`
	BoardBefore     game.Cards           `json:"board_before"`
	CardValueCounts [models.NumRanks]int `json:"running_card_value_counts"`
	CardPlayed      models.Card          `json:"card_played"`
	CapturedCards   game.Cards           `json:"captured_cards"`
	CardsCollected  game.Cards           `json:"cards_collected"`
	BoardAfter      game.Cards           `json:"board_after"`
	Player1PileSize int                  `json:"player_1_pile_size"`
	Player2PileSize int                  `json:"player_2_pile_size"`
	Player1Scopas   int                  `json:"player_1_scopas"`
	Player2Scopas   int                  `json:"player_2_scopas"`
	FinalPlayer1    int                  `json:"final_player_1_score"`
	FinalPlayer2    int                  `json:"final_player_2_score"`
}

// Analyze flattens an action log into analysis rows. The log must be complete.
func Analyze(instanceID int, records []game.ActionRecord) ([]Row, error) {
	final, ok := game.FinalScores(records)
	if !ok {
		return nil, fmt.Errorf("instance %d: %w", instanceID, ErrIncompleteLog)
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			InstanceID:      instanceID,
			Player:          rec.Player,
			Action:          rec.Action,
			Hand:            rec.Hand.Clone(),
			BoardBefore:     rec.BoardBefore.Clone(),
			CardValueCounts: rec.CardValueCounts,
			CardPlayed:      rec.CardPlayed,
			CapturedCards:   rec.CapturedCards.Clone(),
			CardsCollected:  rec.CardsCollected.Clone(),
			BoardAfter:      rec.BoardAfter.Clone(),
			Player1PileSize: rec.Player1PileSize,
			Player2PileSize: rec.Player2PileSize,
			Player1Scopas:   rec.Player1Scopas,
			Player2Scopas:   rec.Player2Scopas,
			FinalPlayer1:    final[0],
			FinalPlayer2:    final[1],
		})
	}
	return rows, nil
}

// Analyzer is the analysis stage: it turns persisted action logs into
// analysis artifacts.
type Analyzer struct {
	store  *Store
	logger *logrus.Logger
}

func NewAnalyzer(store *Store, logger *logrus.Logger) *Analyzer {
	return &Analyzer{store: store, logger: logger}
}

// Process loads the log of one instance, analyzes it and writes its artifact.
func (a *Analyzer) Process(ctx context.Context, instanceID int) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	records, err := a.store.LoadGameLog(instanceID)
	if err != nil {
		return nil, err
	}
	rows, err := Analyze(instanceID, records)
	if err != nil {
		return nil, err
	}
	if err := a.store.SaveAnalysis(instanceID, rows); err != nil {
		return nil, fmt.Errorf("instance %d: %w", instanceID, err)
	}

	a.logger.WithFields(logrus.Fields{
		"instance_id": instanceID,
		"actions":     len(rows),
		"duration":    time.Since(start),
	}).Debug("Analysis written")
	return rows, nil
}

// ProcessAll analyzes every listed instance into one combined artifact at
// out. Instances whose log is missing or incomplete are skipped with a
// warning. It returns the number of rows written.
func (a *Analyzer) ProcessAll(ctx context.Context, instanceIDs []int, out string) (int, error) {
	all := make([]Row, 0)
	for _, id := range instanceIDs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		records, err := a.store.LoadGameLog(id)
		if err == nil {
			var rows []Row
			if rows, err = Analyze(id, records); err == nil {
				all = append(all, rows...)
				continue
			}
		}
		a.logger.WithFields(logrus.Fields{
			"instance_id": id,
			"error":       err,
		}).Warn("Skipping instance")
	}
	if err := writeJSON(out, all); err != nil {
		return 0, err
	}
	return len(all), nil
}
