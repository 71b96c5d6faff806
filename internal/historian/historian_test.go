// internal/historian/historian_test.go
package historian

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func playedGame(t *testing.T, seed uint64) *game.Game {
	t.Helper()
	g := game.NewGame(seed, game.DefaultHouseRules())
	_, err := g.Play()
	require.NoError(t, err)
	return g
}

func TestStorePaths(t *testing.T) {
	s := &Store{Dir: "logs"}
	assert.Equal(t, filepath.Join("logs", "game_logs_12.json"), s.GameLogPath(12))
	assert.Equal(t, filepath.Join("logs", "game_12_analysis.json"), s.AnalysisPath(12))
}

func TestStoreGameLogRoundTrip(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "logs"))
	require.NoError(t, err)

	g := playedGame(t, 5)
	require.NoError(t, s.SaveGameLog(5, g.Records()))

	loaded, err := s.LoadGameLog(5)
	require.NoError(t, err)
	require.Len(t, loaded, len(g.Records()))

	want, _ := game.FinalScores(g.Records())
	got, ok := game.FinalScores(loaded)
	require.True(t, ok)
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestStoreRejectsIncompleteLog(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	g := game.NewGame(1, game.DefaultHouseRules())
	require.NoError(t, g.Step())
	require.NoError(t, g.Step())

	err = s.SaveGameLog(1, g.Records())
	assert.ErrorIs(t, err, ErrIncompleteLog)
	assert.NoFileExists(t, s.GameLogPath(1))
}

func TestStoreMissingLog(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.LoadGameLog(404)
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestAnalyzeDenormalizesFinalScores(t *testing.T) {
	g := playedGame(t, 9)
	final, _ := game.FinalScores(g.Records())

	rows, err := Analyze(9, g.Records())
	require.NoError(t, err)
	require.Len(t, rows, len(g.Records()))

	for i, row := range rows {
		rec := g.Records()[i]
		assert.Equal(t, 9, row.InstanceID)
		assert.Equal(t, rec.Player, row.Player)
		assert.Equal(t, rec.Action, row.Action)
		assert.Equal(t, rec.CardValueCounts, row.CardValueCounts)
		assert.Equal(t, rec.Player1PileSize, row.Player1PileSize)
		assert.Equal(t, rec.Player2Scopas, row.Player2Scopas)
		assert.Equal(t, final[0], row.FinalPlayer1)
		assert.Equal(t, final[1], row.FinalPlayer2)
	}

	_, err = Analyze(9, g.Records()[:len(g.Records())-1])
	assert.ErrorIs(t, err, ErrIncompleteLog)
}

func TestAnalysisRowJSONKeys(t *testing.T) {
	g := playedGame(t, 2)
	rows, err := Analyze(2, g.Records())
	require.NoError(t, err)

	data, err := json.Marshal(rows[0])
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{
		"instance_id", "player", "action", "hand", "board_before",
		"running_card_value_counts", "board_after", "player_1_pile_size",
		"player_2_pile_size", "player_1_scopas", "player_2_scopas",
		"final_player_1_score", "final_player_2_score",
	} {
		assert.Contains(t, raw, key)
	}
}

func TestAnalyzerProcess(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	g := playedGame(t, 3)
	require.NoError(t, s.SaveGameLog(3, g.Records()))

	a := NewAnalyzer(s, quietLogger())
	rows, err := a.Process(context.Background(), 3)
	require.NoError(t, err)

	saved, err := s.LoadAnalysis(3)
	require.NoError(t, err)
	assert.Len(t, saved, len(rows))

	_, err = a.Process(context.Background(), 4)
	assert.ErrorIs(t, err, ErrLogNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Process(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzerProcessAllSkipsMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	want := 0
	for _, id := range []int{1, 2} {
		g := playedGame(t, uint64(id))
		require.NoError(t, s.SaveGameLog(id, g.Records()))
		want += len(g.Records())
	}

	out := filepath.Join(s.Dir, "combined", "analysis.json")
	a := NewAnalyzer(s, quietLogger())
	n, err := a.ProcessAll(context.Background(), []int{1, 2, 3}, out)
	require.NoError(t, err)
	assert.Equal(t, want, n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []Row
	require.NoError(t, json.Unmarshal(data, &rows))
	assert.Len(t, rows, want)
	assert.Equal(t, 1, rows[0].InstanceID)
	assert.Equal(t, 2, rows[len(rows)-1].InstanceID)
}
