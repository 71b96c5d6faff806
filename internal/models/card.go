// internal/models/card.go
package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRank = errors.New("invalid card rank")
	ErrInvalidSuit = errors.New("invalid card suit")
)

// Suit is one of the four Scopa suits.
type Suit uint8

const (
	Diamonds Suit = iota
	Hearts
	Spades
	Clubs
)

// NumSuits is the number of suits in a Scopa deck.
const NumSuits = 4

// Suits lists every suit in deck order.
var Suits = [NumSuits]Suit{Diamonds, Hearts, Spades, Clubs}

var suitNames = [NumSuits]string{"diamonds", "hearts", "spades", "clubs"}
var suitCodes = [NumSuits]byte{'d', 'h', 's', 'c'}

// String returns the full suit name, e.g. "diamonds".
func (s Suit) String() string {
	if int(s) >= NumSuits {
		return fmt.Sprintf("Suit(%d)", uint8(s))
	}
	return suitNames[s]
}

// Code returns the single-letter suit code used in card keys.
func (s Suit) Code() byte { return suitCodes[s] }

// ParseSuit accepts either the full suit name or its one-letter code.
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if name == n || (len(name) == 1 && name[0] == suitCodes[i]) {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidSuit, name)
}

// Rank is one of the ten Scopa ranks. The underlying value is the card's
// face value: Ace=1 ... Seven=7, Jack=8, Queen=9, King=10.
type Rank uint8

const (
	Ace   Rank = 1
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Jack  Rank = 8
	Queen Rank = 9
	King  Rank = 10
)

// NumRanks is the number of ranks per suit.
const NumRanks = 10

// Ranks lists every rank in ascending face value.
var Ranks = [NumRanks]Rank{Ace, Two, Three, Four, Five, Six, Seven, Jack, Queen, King}

var rankSymbols = [NumRanks + 1]string{"", "A", "2", "3", "4", "5", "6", "7", "J", "Q", "K"}

// String returns the rank symbol, e.g. "A" or "Q".
func (r Rank) String() string {
	if !r.valid() {
		return fmt.Sprintf("Rank(%d)", uint8(r))
	}
	return rankSymbols[r]
}

func (r Rank) valid() bool { return r >= Ace && r <= King }

// Value returns the face value used for captures (1-10).
func (r Rank) Value() int { return int(r) }

// ParseRank converts a rank symbol into a Rank.
func ParseRank(symbol string) (Rank, error) {
	for i := 1; i <= NumRanks; i++ {
		if rankSymbols[i] == symbol {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRank, symbol)
}

// Card is a single Scopa card. Cards are comparable values; a (Rank, Suit)
// pair identifies a card uniquely within a deck.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard builds a card from a rank symbol and a suit name, refusing
// anything outside the fixed rank and suit sets.
func NewCard(rank, suit string) (Card, error) {
	r, err := ParseRank(rank)
	if err != nil {
		return Card{}, err
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: r, Suit: s}, nil
}

// MustCard is like NewCard but panics on invalid input. Intended for static
// tables and tests.
func MustCard(rank, suit string) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether the card's rank and suit are within range.
func (c Card) Valid() bool { return c.Rank.valid() && int(c.Suit) < NumSuits }

// Value returns the card's capture value.
func (c Card) Value() int { return c.Rank.Value() }

// Key returns the compact identifier of the card, e.g. "7d".
func (c Card) Key() string { return c.Rank.String() + string(c.Suit.Code()) }

// String returns the human readable card name, e.g. "7 of diamonds".
func (c Card) String() string { return c.Rank.String() + " of " + c.Suit.String() }

// ParseKey parses a compact card key such as "7d" or "Kc".
func ParseKey(key string) (Card, error) {
	if len(key) != 2 {
		return Card{}, fmt.Errorf("%w: malformed card key %q", ErrInvalidRank, key)
	}
	return NewCard(key[:1], key[1:])
}

// MarshalText encodes the card as its key.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: cannot encode %v/%v", ErrInvalidRank, c.Rank, c.Suit)
	}
	return []byte(c.Key()), nil
}

// UnmarshalText decodes a card key.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// SetteBello is the seven of diamonds.
var SetteBello = Card{Rank: Seven, Suit: Diamonds}

// FullDeck returns all 40 cards in canonical order (suit-major).
func FullDeck() []Card {
	cards := make([]Card, 0, NumSuits*NumRanks)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return cards
}
