package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/jason-s-yu/scopa/internal/models"
)

// View is what a player sees when asked to act. Legal is never empty when
// a policy is consulted.
type View struct {
	Player          int // 1 or 2
	Hand            Cards
	Board           Cards
	OpponentHandLen int
	DeckLen         int
	Legal           []Action
}

// Policy chooses one of the legal actions. Implementations must return an
// element of v.Legal; anything else is rejected by the engine.
type Policy interface {
	Decide(v View) Action
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc func(v View) Action

func (f PolicyFunc) Decide(v View) Action { return f(v) }

// RandomPolicy picks uniformly among the legal actions.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy returns a uniform policy drawing from rng.
func NewRandomPolicy(rng *rand.Rand) *RandomPolicy {
	return &RandomPolicy{rng: rng}
}

func (p *RandomPolicy) Decide(v View) Action {
	return v.Legal[p.rng.IntN(len(v.Legal))]
}

// FirstLegalPolicy always takes the first legal action.
type FirstLegalPolicy struct{}

func (FirstLegalPolicy) Decide(v View) Action { return v.Legal[0] }

// GreedyPolicy prefers a scopa, then the sette bello, then the capture
// taking the most cards. Among discards it throws the lowest card.
type GreedyPolicy struct{}

func (GreedyPolicy) Decide(v View) Action {
	best := v.Legal[0]
	bestScore := greedyScore(best, v.Board)
	for _, a := range v.Legal[1:] {
		if s := greedyScore(a, v.Board); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best
}

func greedyScore(a Action, board Cards) int {
	switch a.Kind {
	case ActionCapture:
		score := 100 + 10*len(a.Captured)
		if len(a.Captured) == len(board) {
			score += 1000
		}
		if a.Card == models.SetteBello || a.Captured.Contains(models.SetteBello) {
			score += 500
		}
		score += a.Captured.CountSuit(models.Diamonds)
		return score
	case ActionCollect:
		return 100 + len(board)
	default:
		return -a.Card.Value()
	}
}

// ParsePolicy maps a policy name to a Policy. "random" (or "") returns nil,
// meaning the game keeps its seeded random policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "random":
		return nil, nil
	case "greedy":
		return GreedyPolicy{}, nil
	case "first":
		return FirstLegalPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}
