package game

import "github.com/jason-s-yu/scopa/internal/models"

// CaptureOptions returns every capture available to card against board.
// Each distinct subset of board positions whose values sum to the card's
// value yields exactly one action, with the captured cards in board order.
// Values are positive, so branches whose partial sum overshoots are pruned.
func CaptureOptions(card models.Card, board Cards) []Action {
	var out []Action
	target := card.Value()
	picked := make([]int, 0, len(board))

	var walk func(start, sum int)
	walk = func(start, sum int) {
		if sum == target && len(picked) > 0 {
			captured := make(Cards, len(picked))
			for i, pos := range picked {
				captured[i] = board[pos]
			}
			out = append(out, Action{Kind: ActionCapture, Card: card, Captured: captured})
			return
		}
		for i := start; i < len(board); i++ {
			v := board[i].Value()
			if sum+v > target {
				continue
			}
			picked = append(picked, i)
			walk(i+1, sum+v)
			picked = picked[:len(picked)-1]
		}
	}
	walk(0, 0)
	return out
}

// Resolve returns the actions available when card is played against board:
// its captures, or the single fallback discard when nothing can be taken.
func Resolve(card models.Card, board Cards, rules HouseRules) []Action {
	captures := CaptureOptions(card, board)
	if rules.SingleCardPriority {
		captures = preferSingleCard(captures)
	}
	if len(captures) == 0 {
		return []Action{{Kind: ActionDiscard, Card: card}}
	}
	return captures
}

// preferSingleCard drops multi-card captures when a one-card capture of the
// same value exists.
func preferSingleCard(captures []Action) []Action {
	var singles []Action
	for _, a := range captures {
		if len(a.Captured) == 1 {
			singles = append(singles, a)
		}
	}
	if len(singles) == 0 {
		return captures
	}
	return singles
}

// LegalActions enumerates every legal play for hand. When the collect rule
// triggers, collecting the board is the only option. Otherwise captures are
// mandatory: discards are only offered when no card in hand captures.
func LegalActions(hand, board Cards, opponentHandLen, deckLen int, rules HouseRules) []Action {
	if len(hand) == 0 {
		return nil
	}

	if rules.collectTriggered(opponentHandLen, deckLen) {
		actions := make([]Action, 0, len(hand))
		for _, c := range hand {
			actions = append(actions, Action{Kind: ActionCollect, Card: c})
		}
		return actions
	}

	var captures, discards []Action
	for _, c := range hand {
		for _, a := range Resolve(c, board, rules) {
			if a.Kind == ActionCapture {
				captures = append(captures, a)
			} else {
				discards = append(discards, a)
			}
		}
	}
	if len(captures) > 0 {
		return captures
	}
	return discards
}
