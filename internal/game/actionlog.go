package game

import "github.com/jason-s-yu/scopa/internal/models"

// ActionRecord is one entry of a game's action log. The last record of a
// finished game also carries both final scores.
type ActionRecord struct {
	Player          int                  `json:"player"`
	Action          ActionKind           `json:"action"`
	Hand            Cards                `json:"hand"`
	BoardBefore     Cards                `json:"board_before"`
	CardValueCounts [models.NumRanks]int `json:"card_value_counts"` // cards played so far, per face value 1-10
	CardPlayed      models.Card          `json:"card_played"`
	CapturedCards   Cards                `json:"captured_cards,omitempty"`
	CardsCollected  Cards                `json:"cards_collected,omitempty"`
	BoardAfter      Cards                `json:"board_after"`
	Player1PileSize int                  `json:"running_player_1_pile_size"`
	Player2PileSize int                  `json:"running_player_2_pile_size"`
	Player1Scopas   int                  `json:"running_player_1_scopas"`
	Player2Scopas   int                  `json:"running_player_2_scopas"`
	Scopa           bool                 `json:"scopa,omitempty"`
	FinalPlayer1    *int                 `json:"final_player_1_score,omitempty"`
	FinalPlayer2    *int                 `json:"final_player_2_score,omitempty"`
}

func (r *ActionRecord) setFinalScores(o Outcome) {
	s1, s2 := o.Scores[0], o.Scores[1]
	r.FinalPlayer1 = &s1
	r.FinalPlayer2 = &s2
}

// FinalScores returns the final scores carried by the last record of log,
// or false if the log is empty or was never finalized.
func FinalScores(log []ActionRecord) ([NumPlayers]int, bool) {
	if len(log) == 0 {
		return [NumPlayers]int{}, false
	}
	last := log[len(log)-1]
	if last.FinalPlayer1 == nil || last.FinalPlayer2 == nil {
		return [NumPlayers]int{}, false
	}
	return [NumPlayers]int{*last.FinalPlayer1, *last.FinalPlayer2}, true
}
