package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/jason-s-yu/scopa/internal/models"
)

const (
	NumPlayers = 2
	HandSize   = 3
	BoardSize  = 4
	DeckSize   = models.NumSuits * models.NumRanks
)

// Deck holds the undealt cards. It only ever shrinks.
type Deck struct {
	cards []models.Card
}

// NewDeck builds the 40-card deck and shuffles it with rng.
func NewDeck(rng *rand.Rand) *Deck {
	cards := models.FullDeck()
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}
}

// Deal removes n cards from the top of the deck. Only a hand (3) or the
// initial board (4) may be dealt.
func (d *Deck) Deal(n int) (Cards, error) {
	if n != HandSize && n != BoardSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDeal, n)
	}
	if len(d.cards) < n {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrDeckExhausted, n, len(d.cards))
	}
	top := len(d.cards) - n
	dealt := make(Cards, n)
	copy(dealt, d.cards[top:])
	d.cards = d.cards[:top]
	return dealt, nil
}

// Len returns the number of undealt cards.
func (d *Deck) Len() int { return len(d.cards) }

// Empty reports whether every card has been dealt.
func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// Cards returns a copy of the undealt cards.
func (d *Deck) Cards() Cards { return Cards(d.cards).Clone() }
