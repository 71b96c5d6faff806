package pipeline

import (
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/jason-s-yu/scopa/internal/rating"
)

// Result is the outcome of one simulated instance, handed directly from the
// task that ran it to whoever consumes it.
type Result struct {
	InstanceID int
	GameID     uuid.UUID
	Seed       uint64
	Scores     [game.NumPlayers]int
	Winner     int // 0 for a tie, otherwise 1 or 2
	Duration   time.Duration
	Err        error
}

// OK reports whether the game ran to completion and its log was persisted.
func (r Result) OK() bool { return r.Err == nil }

// SeedFor derives the seed of an instance from the batch's base seed.
func SeedFor(base uint64, instanceID int) uint64 {
	return base + uint64(instanceID)
}

// Summary tallies a finished batch.
type Summary struct {
	Games          int
	Completed      int
	Failed         int
	Analyzed       int // pipeline mode only
	AnalysisFailed int // pipeline mode only
	Duration       time.Duration
	Results        []Result // pool mode: by instance id; pipeline mode: in consumption order
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if r.OK() {
		s.Completed++
	} else {
		s.Failed++
	}
}

// Rate feeds every completed game into Glicko2 ratings of the two seats,
// named "player1/<name1>" and "player2/<name2>".
func (s Summary) Rate(name1, name2 string) *rating.Ratings {
	seat1, seat2 := "player1/"+name1, "player2/"+name2
	ratings := rating.NewRatings()
	for _, r := range s.Results {
		if r.OK() {
			ratings.RecordMatch(seat1, seat2, rating.MatchScore(r.Winner))
		}
	}
	return ratings
}
