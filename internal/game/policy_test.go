package game

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyPolicyPrefersScopa(t *testing.T) {
	board := cards("4h", "3d", "7s")
	v := View{
		Player: 1,
		Hand:   cards("7c", "Ks"),
		Board:  board,
		Legal: []Action{
			{Kind: ActionCapture, Card: card("7c"), Captured: cards("7s")},
			{Kind: ActionCapture, Card: card("7c"), Captured: cards("4h", "3d")},
		},
	}
	// Neither clears the board, so the larger capture wins.
	assert.Equal(t, cards("4h", "3d"), GreedyPolicy{}.Decide(v).Captured)

	v.Board = cards("4h", "3d")
	v.Legal = []Action{
		{Kind: ActionDiscard, Card: card("Ks")},
		{Kind: ActionCapture, Card: card("7c"), Captured: cards("4h", "3d")},
	}
	assert.Equal(t, ActionCapture, GreedyPolicy{}.Decide(v).Kind)
}

func TestGreedyPolicyDiscardsLowest(t *testing.T) {
	v := View{Legal: []Action{
		{Kind: ActionDiscard, Card: card("Kd")},
		{Kind: ActionDiscard, Card: card("2c")},
		{Kind: ActionDiscard, Card: card("5h")},
	}}
	assert.Equal(t, card("2c"), GreedyPolicy{}.Decide(v).Card)
}

func TestRandomPolicyStaysInLegalSet(t *testing.T) {
	p := NewRandomPolicy(rand.New(rand.NewPCG(3, 3)))
	legal := []Action{
		{Kind: ActionDiscard, Card: card("Kd")},
		{Kind: ActionDiscard, Card: card("2c")},
	}
	for i := 0; i < 50; i++ {
		assert.True(t, containsAction(legal, p.Decide(View{Legal: legal})))
	}
}

func TestFixedPoliciesAreDeterministic(t *testing.T) {
	for _, p := range []Policy{FirstLegalPolicy{}, GreedyPolicy{}} {
		run := func() [NumPlayers]int {
			g := NewGame(17, DefaultHouseRules())
			g.SetPolicy(1, p)
			g.SetPolicy(2, p)
			o, err := g.Play()
			require.NoError(t, err)
			return o.Scores
		}
		assert.Equal(t, run(), run())
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("random")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = ParsePolicy("greedy")
	require.NoError(t, err)
	assert.Equal(t, GreedyPolicy{}, p)

	p, err = ParsePolicy("first")
	require.NoError(t, err)
	assert.Equal(t, FirstLegalPolicy{}, p)

	_, err = ParsePolicy("clairvoyant")
	assert.Error(t, err)
}
