package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHouseRules(t *testing.T) {
	rules := DefaultHouseRules()
	assert.False(t, rules.SingleCardPriority)
	assert.Equal(t, CollectOnOpponentEmpty, rules.CollectMode)
	assert.True(t, rules.ScopaOnFinalPlay)
}

func TestParseRulesKeepsUnsetFields(t *testing.T) {
	rules, err := ParseRules(map[string]interface{}{
		"singleCardPriority": true,
		"collectMode":        "final_play",
		"unrelated":          42,
	}, DefaultHouseRules())
	require.NoError(t, err)

	assert.True(t, rules.SingleCardPriority)
	assert.Equal(t, CollectOnFinalPlay, rules.CollectMode)
	assert.True(t, rules.ScopaOnFinalPlay, "unset field keeps its current value")
}

func TestParseRulesNilValueIgnored(t *testing.T) {
	rules, err := ParseRules(map[string]interface{}{"scopaOnFinalPlay": nil}, DefaultHouseRules())
	require.NoError(t, err)
	assert.True(t, rules.ScopaOnFinalPlay)
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
	}{
		{"bool as string", map[string]interface{}{"singleCardPriority": "yes"}},
		{"mode as number", map[string]interface{}{"collectMode": 1}},
		{"unknown mode", map[string]interface{}{"collectMode": "whenever"}},
		{"scopa flag as number", map[string]interface{}{"scopaOnFinalPlay": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRules(tt.input, DefaultHouseRules())
			assert.Error(t, err)
		})
	}
}

func TestUpdateAllModes(t *testing.T) {
	for _, mode := range []CollectMode{CollectOnOpponentEmpty, CollectOnFinalPlay, CollectLastCapturer} {
		rules := DefaultHouseRules()
		require.NoError(t, rules.Update(map[string]interface{}{"collectMode": string(mode)}))
		assert.Equal(t, mode, rules.CollectMode)
	}
}
