package pipeline

import (
	"context"
	"io"
	"os/exec"
	"testing"

	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/jason-s-yu/scopa/internal/historian"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runnerFunc adapts a function to the Runner interface.
type runnerFunc func(ctx context.Context, instanceID int, seed uint64) Result

func (f runnerFunc) Run(ctx context.Context, instanceID int, seed uint64) Result {
	return f(ctx, instanceID, seed)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestGameRunnerPersistsLog(t *testing.T) {
	store, err := historian.NewStore(t.TempDir())
	require.NoError(t, err)
	r := &GameRunner{Rules: game.DefaultHouseRules(), Store: store, Policy2: game.GreedyPolicy{}}

	res := r.Run(context.Background(), 4, 44)
	require.NoError(t, res.Err)
	assert.Equal(t, game.GameID(44), res.GameID)
	assert.Equal(t, uint64(44), res.Seed)

	records, err := store.LoadGameLog(4)
	require.NoError(t, err)
	scores, ok := game.FinalScores(records)
	require.True(t, ok)
	assert.Equal(t, res.Scores, scores)
	assert.Equal(t, winner(scores), res.Winner)
}

func TestGameRunnerIllegalPolicyFails(t *testing.T) {
	r := &GameRunner{
		Rules: game.DefaultHouseRules(),
		Policy1: game.PolicyFunc(func(v game.View) game.Action {
			return game.Action{Kind: game.ActionCollect, Card: v.Hand[0]}
		}),
	}
	res := r.Run(context.Background(), 1, 1)
	assert.ErrorIs(t, res.Err, ErrGameFailed)
	assert.ErrorIs(t, res.Err, game.ErrIllegalAction)
}

func TestRunSafelyRecoversPanic(t *testing.T) {
	res := runSafely(context.Background(), runnerFunc(func(context.Context, int, uint64) Result {
		panic("deck on fire")
	}), 7, 70)

	assert.ErrorIs(t, res.Err, ErrGamePanicked)
	assert.Contains(t, res.Err.Error(), "deck on fire")
	assert.Equal(t, 7, res.InstanceID)
	assert.Equal(t, game.GameID(70), res.GameID)
}

func TestExecRunnerExitCode(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	falsePath, err := exec.LookPath("false")
	if err != nil {
		t.Skip("false not available")
	}

	ok := (&ExecRunner{Binary: truePath}).Run(context.Background(), 1, 10)
	assert.NoError(t, ok.Err)
	assert.Equal(t, game.GameID(10), ok.GameID)

	failed := (&ExecRunner{Binary: falsePath}).Run(context.Background(), 2, 20)
	assert.ErrorIs(t, failed.Err, ErrGameFailed)
	assert.Contains(t, failed.Err.Error(), "exit status 1")
}

func TestExecRunnerMissingLog(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true not available")
	}
	store, err := historian.NewStore(t.TempDir())
	require.NoError(t, err)

	res := (&ExecRunner{Binary: truePath, Store: store}).Run(context.Background(), 3, 30)
	assert.ErrorIs(t, res.Err, ErrGameFailed)
	assert.ErrorIs(t, res.Err, historian.ErrLogNotFound)
}
