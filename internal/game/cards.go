package game

import (
	"fmt"
	"strings"

	"github.com/jason-s-yu/scopa/internal/models"
)

// Cards is an ordered collection of cards. Hands and the board are both
// plain Cards; order is significant for the board since captures are
// canonicalized by board position.
type Cards []models.Card

// Index returns the position of c, or -1 if it is absent.
func (cs Cards) Index(c models.Card) int {
	for i, x := range cs {
		if x == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is present.
func (cs Cards) Contains(c models.Card) bool { return cs.Index(c) >= 0 }

// Remove deletes the first occurrence of c, preserving order.
func (cs *Cards) Remove(c models.Card) error {
	i := cs.Index(c)
	if i < 0 {
		return fmt.Errorf("%w: %s in %s", ErrCardNotFound, c.Key(), cs)
	}
	*cs = append((*cs)[:i], (*cs)[i+1:]...)
	return nil
}

// Clone returns an independent copy. The copy is never nil so that empty
// snapshots serialize as [] rather than null.
func (cs Cards) Clone() Cards {
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}

// Sum returns the total face value.
func (cs Cards) Sum() int {
	total := 0
	for _, c := range cs {
		total += c.Value()
	}
	return total
}

// CountSuit returns how many cards of suit s are present.
func (cs Cards) CountSuit(s models.Suit) int {
	n := 0
	for _, c := range cs {
		if c.Suit == s {
			n++
		}
	}
	return n
}

// String renders the keys, e.g. "[7d Ah]".
func (cs Cards) String() string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = c.Key()
	}
	return "[" + strings.Join(keys, " ") + "]"
}

// Pile is a player's captured cards plus the number of scopas scored.
type Pile struct {
	Cards  Cards `json:"cards"`
	Scopas int   `json:"scopas"`
}

// Add appends captured cards to the pile.
func (p *Pile) Add(cards ...models.Card) {
	p.Cards = append(p.Cards, cards...)
}

// Len returns the number of captured cards.
func (p *Pile) Len() int { return len(p.Cards) }

// HasSetteBello reports whether the seven of diamonds was captured.
func (p *Pile) HasSetteBello() bool { return p.Cards.Contains(models.SetteBello) }
