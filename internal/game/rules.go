// internal/game/rules.go
package game

import "fmt"

// CollectMode selects when the "collect remaining board" play replaces the
// ordinary legal actions.
type CollectMode string

const (
	// CollectOnOpponentEmpty triggers whenever the opponent has no cards
	// left, i.e. on the last card of every deal.
	CollectOnOpponentEmpty CollectMode = "opponent_empty"
	// CollectOnFinalPlay triggers only on the last play of the game.
	CollectOnFinalPlay CollectMode = "final_play"
	// CollectLastCapturer never offers the sweep as a play; whatever is left
	// on the board when the game ends goes to the last player who captured.
	CollectLastCapturer CollectMode = "last_capturer"
)

// HouseRules defines optional rule variants that modify standard play.
type HouseRules struct {
	SingleCardPriority bool        `json:"singleCardPriority"` // a single matching board card must be taken over a multi-card sum
	CollectMode        CollectMode `json:"collectMode"`        // when the board sweep replaces ordinary plays
	ScopaOnFinalPlay   bool        `json:"scopaOnFinalPlay"`   // award a scopa for clearing the board on the game's last play
}

// DefaultHouseRules returns the rules the simulator runs with unless
// configured otherwise.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		SingleCardPriority: false,
		CollectMode:        CollectOnOpponentEmpty,
		ScopaOnFinalPlay:   true,
	}
}

func (rules HouseRules) collectTriggered(opponentHandLen, deckLen int) bool {
	if opponentHandLen > 0 {
		return false
	}
	switch rules.CollectMode {
	case CollectOnFinalPlay:
		return deckLen == 0
	case CollectLastCapturer:
		return false
	default:
		return true
	}
}

// Update will update the house rules with the new rules provided.
// If a rule is not set or defined, it will be ignored, and the old value will persist.
func (rules *HouseRules) Update(newRules map[string]interface{}) error {
	assignBool := func(field *bool, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			*field = b
		}
		return nil
	}

	assignMode := func(field *CollectMode, key string) error {
		if val, exists := newRules[key]; exists && val != nil {
			s, ok := val.(string)
			if !ok {
				return fmt.Errorf("invalid type for %s", key)
			}
			switch mode := CollectMode(s); mode {
			case CollectOnOpponentEmpty, CollectOnFinalPlay, CollectLastCapturer:
				*field = mode
			default:
				return fmt.Errorf("unknown %s %q", key, s)
			}
		}
		return nil
	}

	if err := assignBool(&rules.SingleCardPriority, "singleCardPriority"); err != nil {
		return err
	}
	if err := assignMode(&rules.CollectMode, "collectMode"); err != nil {
		return err
	}
	if err := assignBool(&rules.ScopaOnFinalPlay, "scopaOnFinalPlay"); err != nil {
		return err
	}
	return nil
}

// ParseRules converts a map of rules to a HouseRules struct. It will ensure the types are valid.
func ParseRules(rules map[string]interface{}, current HouseRules) (HouseRules, error) {
	houseRules := current
	err := houseRules.Update(rules)
	return houseRules, err
}
