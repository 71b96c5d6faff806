package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCardValues(t *testing.T) {
	tests := []struct {
		rank  string
		value int
	}{
		{"A", 1}, {"2", 2}, {"3", 3}, {"4", 4}, {"5", 5},
		{"6", 6}, {"7", 7}, {"J", 8}, {"Q", 9}, {"K", 10},
	}
	for _, tt := range tests {
		c, err := NewCard(tt.rank, "clubs")
		require.NoError(t, err, "rank %s", tt.rank)
		assert.Equal(t, tt.value, c.Value(), "rank %s", tt.rank)
	}
}

func TestNewCardRejectsInvalid(t *testing.T) {
	_, err := NewCard("8", "diamonds")
	assert.ErrorIs(t, err, ErrInvalidRank)

	_, err = NewCard("10", "hearts")
	assert.ErrorIs(t, err, ErrInvalidRank)

	_, err = NewCard("7", "coins")
	assert.ErrorIs(t, err, ErrInvalidSuit)

	assert.Panics(t, func() { MustCard("X", "spades") })
}

func TestCardKeyRoundTrip(t *testing.T) {
	c := MustCard("7", "diamonds")
	assert.Equal(t, "7d", c.Key())
	assert.Equal(t, "7 of diamonds", c.String())
	assert.Equal(t, SetteBello, c)

	parsed, err := ParseKey("Kc")
	require.NoError(t, err)
	assert.Equal(t, Card{Rank: King, Suit: Clubs}, parsed)

	_, err = ParseKey("Kcc")
	assert.Error(t, err)
}

func TestCardJSON(t *testing.T) {
	hand := []Card{MustCard("A", "h"), MustCard("Q", "s")}
	data, err := json.Marshal(hand)
	require.NoError(t, err)
	assert.JSONEq(t, `["Ah","Qs"]`, string(data))

	var back []Card
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, hand, back)

	assert.Error(t, json.Unmarshal([]byte(`["Zz"]`), &back))
}

func TestFullDeckUnique(t *testing.T) {
	deck := FullDeck()
	require.Len(t, deck, 40)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.True(t, c.Valid(), "card %v invalid", c)
		assert.False(t, seen[c], "duplicate card %v", c)
		seen[c] = true
	}
}
