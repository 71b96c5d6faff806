// internal/game/game.go
package game

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/jason-s-yu/scopa/internal/models"
)

// Phase is the lifecycle stage of a game.
type Phase uint8

const (
	PhaseDealing Phase = iota
	PhasePlaying
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhasePlaying:
		return "playing"
	case PhaseTerminal:
		return "terminal"
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// PCG stream selectors; shuffling and policy choices draw from independent
// streams of the same seed.
const (
	deckStream   uint64 = 0x5c0fa
	policyStream uint64 = 0x9e3779b97f4a7c15
)

// gameNamespace scopes the deterministic game IDs derived from seeds.
var gameNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("scopa"))

// Game holds the complete state of a single two-player Scopa round. A Game
// is owned by the goroutine that plays it and is not safe for concurrent use.
type Game struct {
	ID    uuid.UUID  // Derived from the seed, stable across runs.
	Seed  uint64     // Seed for both the shuffle and the default policies.
	Rules HouseRules // Rule variants in effect.

	Hands   [NumPlayers]Cards
	Board   Cards
	Piles   [NumPlayers]Pile
	Current int // index of the player to act, 0 or 1
	Phase   Phase

	deck         *Deck
	policies     [NumPlayers]Policy
	records      []ActionRecord
	played       [models.NumRanks]int
	lastCapturer int // index of the last player to take cards, -1 if none
	outcome      *Outcome
}

// NewGame creates a game whose shuffle and default random policies are fully
// determined by seed. Cards are not dealt until Deal (or Play) is called.
func NewGame(seed uint64, rules HouseRules) *Game {
	g := &Game{
		ID:           GameID(seed),
		Seed:         seed,
		Rules:        rules,
		deck:         NewDeck(rand.New(rand.NewPCG(seed, deckStream))),
		lastCapturer: -1,
	}
	policyRNG := rand.New(rand.NewPCG(seed, policyStream))
	for i := range g.policies {
		g.policies[i] = NewRandomPolicy(policyRNG)
	}
	return g
}

// GameID returns the deterministic identifier of the game played from seed.
func GameID(seed uint64) uuid.UUID {
	return uuid.NewSHA1(gameNamespace, []byte(strconv.FormatUint(seed, 10)))
}

// SetPolicy replaces the decision policy of player (1 or 2).
func (g *Game) SetPolicy(player int, p Policy) {
	g.policies[player-1] = p
}

// Deck returns the remaining undealt cards.
func (g *Game) Deck() *Deck { return g.deck }

// Records returns the action log accumulated so far.
func (g *Game) Records() []ActionRecord { return g.records }

// Outcome returns the final result once the game is terminal.
func (g *Game) Outcome() (Outcome, bool) {
	if g.outcome == nil {
		return Outcome{}, false
	}
	return *g.outcome, true
}

// IsTerminal reports whether every card has been played.
func (g *Game) IsTerminal() bool { return g.Phase == PhaseTerminal }

// Deal lays out the board and the first hands.
func (g *Game) Deal() error {
	if g.Phase != PhaseDealing {
		return fmt.Errorf("deal in phase %s", g.Phase)
	}
	board, err := g.deck.Deal(BoardSize)
	if err != nil {
		return err
	}
	g.Board = board
	if err := g.dealHands(); err != nil {
		return err
	}
	g.Phase = PhasePlaying
	return nil
}

func (g *Game) dealHands() error {
	for i := range g.Hands {
		hand, err := g.deck.Deal(HandSize)
		if err != nil {
			return err
		}
		g.Hands[i] = hand
	}
	return nil
}

// Play runs the game to completion and returns the scored outcome. The final
// scores are stamped onto the last action record.
func (g *Game) Play() (Outcome, error) {
	for !g.IsTerminal() {
		if err := g.Step(); err != nil {
			return Outcome{}, err
		}
	}
	o, _ := g.Outcome()
	return o, nil
}

// Step advances the game by one transition: the initial deal, a redeal, or
// a single play by the current player.
func (g *Game) Step() error {
	switch g.Phase {
	case PhaseDealing:
		return g.Deal()
	case PhaseTerminal:
		return ErrGameOver
	}

	if len(g.Hands[0]) == 0 && len(g.Hands[1]) == 0 {
		if g.deck.Empty() {
			g.finish()
			return nil
		}
		return g.dealHands()
	}

	// A player with no cards while the opponent still holds some cannot
	// act; pass the turn.
	if len(g.Hands[g.Current]) == 0 {
		g.Current = 1 - g.Current
		return nil
	}

	v := g.View()
	return g.Apply(g.policies[g.Current].Decide(v))
}

// View builds the decision context of the current player.
func (g *Game) View() View {
	return View{
		Player:          g.Current + 1,
		Hand:            g.Hands[g.Current].Clone(),
		Board:           g.Board.Clone(),
		OpponentHandLen: len(g.Hands[1-g.Current]),
		DeckLen:         g.deck.Len(),
		Legal:           g.LegalActions(),
	}
}

// LegalActions lists the plays available to the current player.
func (g *Game) LegalActions() []Action {
	if g.Phase != PhasePlaying {
		return nil
	}
	return LegalActions(g.Hands[g.Current], g.Board, len(g.Hands[1-g.Current]), g.deck.Len(), g.Rules)
}

// Apply plays a for the current player, logs it and passes the turn.
// Actions outside the legal set are refused with ErrIllegalAction.
func (g *Game) Apply(a Action) error {
	if g.Phase == PhaseTerminal {
		return ErrGameOver
	}
	if g.Phase != PhasePlaying {
		return fmt.Errorf("%w: apply in phase %s", ErrIllegalAction, g.Phase)
	}
	if !containsAction(g.LegalActions(), a) {
		return fmt.Errorf("%w: %s", ErrIllegalAction, a)
	}

	p := g.Current
	finalPlay := g.deck.Empty() && len(g.Hands[1-p]) == 0 && len(g.Hands[p]) == 1
	rec := ActionRecord{
		Player:      p + 1,
		Action:      a.Kind,
		Hand:        g.Hands[p].Clone(),
		BoardBefore: g.Board.Clone(),
		CardPlayed:  a.Card,
	}

	if err := g.Hands[p].Remove(a.Card); err != nil {
		return err
	}
	g.played[a.Card.Value()-1]++

	switch a.Kind {
	case ActionDiscard:
		g.Board = append(g.Board, a.Card)

	case ActionCapture:
		for _, c := range a.Captured {
			if err := g.Board.Remove(c); err != nil {
				return err
			}
		}
		g.Piles[p].Add(a.Card)
		g.Piles[p].Add(a.Captured...)
		rec.CapturedCards = a.Captured.Clone()
		g.lastCapturer = p
		if len(g.Board) == 0 && (g.Rules.ScopaOnFinalPlay || !finalPlay) {
			g.Piles[p].Scopas++
			rec.Scopa = true
		}

	case ActionCollect:
		rec.CardsCollected = g.Board.Clone()
		g.Piles[p].Add(a.Card)
		g.Piles[p].Add(g.Board...)
		g.Board = Cards{}
		g.lastCapturer = p
	}

	rec.CardValueCounts = g.played
	rec.BoardAfter = g.Board.Clone()
	rec.Player1PileSize = g.Piles[0].Len()
	rec.Player2PileSize = g.Piles[1].Len()
	rec.Player1Scopas = g.Piles[0].Scopas
	rec.Player2Scopas = g.Piles[1].Scopas
	g.records = append(g.records, rec)

	g.Current = 1 - p
	if g.deck.Empty() && len(g.Hands[0]) == 0 && len(g.Hands[1]) == 0 {
		g.finish()
	}
	return nil
}

// finish sweeps any leftover board under the last-capturer rule, scores the
// round and marks the game terminal.
func (g *Game) finish() {
	if g.Rules.CollectMode == CollectLastCapturer && g.lastCapturer >= 0 && len(g.Board) > 0 {
		g.Piles[g.lastCapturer].Add(g.Board...)
		g.Board = Cards{}
	}
	o := Score(g.Piles[0], g.Piles[1])
	g.outcome = &o
	g.Phase = PhaseTerminal
	if n := len(g.records); n > 0 {
		g.records[n-1].setFinalScores(o)
	}
}

// CheckConservation verifies that the 40 cards are split across the deck,
// hands, board and piles with no card in two places.
func (g *Game) CheckConservation() error {
	seen := make(map[string]string, DeckSize)
	total := 0
	check := func(where string, cards Cards) error {
		for _, c := range cards {
			if prev, dup := seen[c.Key()]; dup {
				return fmt.Errorf("%w: %s in both %s and %s", ErrCardsNotConserved, c.Key(), prev, where)
			}
			seen[c.Key()] = where
			total++
		}
		return nil
	}

	groups := []struct {
		where string
		cards Cards
	}{
		{"deck", Cards(g.deck.cards)},
		{"hand 1", g.Hands[0]},
		{"hand 2", g.Hands[1]},
		{"board", g.Board},
		{"pile 1", g.Piles[0].Cards},
		{"pile 2", g.Piles[1].Cards},
	}
	for _, grp := range groups {
		if err := check(grp.where, grp.cards); err != nil {
			return err
		}
	}
	if total != DeckSize {
		return fmt.Errorf("%w: found %d cards", ErrCardsNotConserved, total)
	}
	return nil
}

func containsAction(actions []Action, a Action) bool {
	for _, x := range actions {
		if x.Equal(a) {
			return true
		}
	}
	return false
}
