// internal/pipeline/runner.go
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jason-s-yu/scopa/internal/game"
	"github.com/jason-s-yu/scopa/internal/historian"
)

// Runner plays one instance to completion. Failures are reported in the
// returned Result rather than as a separate error.
type Runner interface {
	Run(ctx context.Context, instanceID int, seed uint64) Result
}

// GameRunner plays games in-process and persists each action log.
type GameRunner struct {
	Rules   game.HouseRules
	Store   *historian.Store
	Policy1 game.Policy // nil keeps the seeded random policy
	Policy2 game.Policy
}

func (r *GameRunner) Run(ctx context.Context, instanceID int, seed uint64) Result {
	res := Result{InstanceID: instanceID, GameID: game.GameID(seed), Seed: seed}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	g := game.NewGame(seed, r.Rules)
	if r.Policy1 != nil {
		g.SetPolicy(1, r.Policy1)
	}
	if r.Policy2 != nil {
		g.SetPolicy(2, r.Policy2)
	}
	o, err := g.Play()
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrGameFailed, err)
		return res
	}
	if err := g.CheckConservation(); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrGameFailed, err)
		return res
	}
	res.Scores, res.Winner = o.Scores, o.Winner

	if r.Store != nil {
		if err := r.Store.SaveGameLog(instanceID, g.Records()); err != nil {
			res.Err = fmt.Errorf("%w: %w", ErrGameFailed, err)
		}
	}
	return res
}

// ExecRunner plays each game in a child process of Binary, normally
// cmd/scopa, so that a crashing game cannot take the batch down. The exit
// code is the only success signal; scores are read back from the action log
// when Store is set.
type ExecRunner struct {
	Binary string
	Args   []string // extra arguments passed before the instance flags
	Store  *historian.Store
}

func (r *ExecRunner) Run(ctx context.Context, instanceID int, seed uint64) Result {
	res := Result{InstanceID: instanceID, GameID: game.GameID(seed), Seed: seed}

	args := append([]string{}, r.Args...)
	args = append(args,
		"--instance_id="+strconv.Itoa(instanceID),
		"--seed="+strconv.FormatUint(seed, 10),
	)
	if r.Store != nil {
		args = append(args, "--log_dir="+r.Store.Dir)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := lastLine(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Err = fmt.Errorf("%w: exit status %d: %s", ErrGameFailed, exitErr.ExitCode(), detail)
		} else {
			res.Err = fmt.Errorf("%w: %w", ErrGameFailed, err)
		}
		return res
	}

	if r.Store != nil {
		records, err := r.Store.LoadGameLog(instanceID)
		if err != nil {
			res.Err = fmt.Errorf("%w: %w", ErrGameFailed, err)
			return res
		}
		scores, ok := game.FinalScores(records)
		if !ok {
			res.Err = fmt.Errorf("%w: %w", ErrGameFailed, historian.ErrIncompleteLog)
			return res
		}
		res.Scores = scores
		res.Winner = winner(scores)
	}
	return res
}

func winner(scores [game.NumPlayers]int) int {
	switch {
	case scores[0] > scores[1]:
		return 1
	case scores[1] > scores[0]:
		return 2
	}
	return 0
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	if s == "" {
		return "no output"
	}
	return s
}

// runSafely runs one instance, timing it and converting a panic into a
// failed Result.
func runSafely(ctx context.Context, r Runner, instanceID int, seed uint64) (res Result) {
	start := time.Now()
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				InstanceID: instanceID,
				GameID:     game.GameID(seed),
				Seed:       seed,
				Err:        fmt.Errorf("%w: %v", ErrGamePanicked, p),
			}
		}
		res.Duration = time.Since(start)
	}()
	return r.Run(ctx, instanceID, seed)
}
