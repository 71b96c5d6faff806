package game

import (
	"fmt"

	"github.com/jason-s-yu/scopa/internal/models"
)

// ActionKind identifies what a play does with the played card.
type ActionKind uint8

const (
	ActionDiscard ActionKind = iota // card goes face-up onto the board
	ActionCapture                   // card takes a subset of the board summing to its value
	ActionCollect                   // card and the whole remaining board go to the pile
)

var actionKindNames = [...]string{"discard", "capture", "collect_pile"}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// MarshalText encodes the kind by name.
func (k ActionKind) MarshalText() ([]byte, error) {
	if int(k) >= len(actionKindNames) {
		return nil, fmt.Errorf("unknown action kind %d", uint8(k))
	}
	return []byte(actionKindNames[k]), nil
}

// UnmarshalText decodes an action kind name.
func (k *ActionKind) UnmarshalText(text []byte) error {
	for i, name := range actionKindNames {
		if string(text) == name {
			*k = ActionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action kind %q", text)
}

// Action is one legal play. Captured is only set for captures and is
// always listed in board order.
type Action struct {
	Kind     ActionKind
	Card     models.Card
	Captured Cards
}

// Equal reports whether two actions describe the same play.
func (a Action) Equal(b Action) bool {
	if a.Kind != b.Kind || a.Card != b.Card || len(a.Captured) != len(b.Captured) {
		return false
	}
	for i := range a.Captured {
		if a.Captured[i] != b.Captured[i] {
			return false
		}
	}
	return true
}

func (a Action) String() string {
	if a.Kind == ActionCapture {
		return fmt.Sprintf("%s %s takes %s", a.Kind, a.Card.Key(), a.Captured)
	}
	return fmt.Sprintf("%s %s", a.Kind, a.Card.Key())
}
