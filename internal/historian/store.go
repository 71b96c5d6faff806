// internal/historian/store.go is the flat-file persistence of game action logs
// and their derived analysis artifacts, one pair of files per instance id.
package historian

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jason-s-yu/scopa/internal/game"
)

var (
	ErrLogNotFound   = errors.New("game log not found")
	ErrIncompleteLog = errors.New("game log has no final scores")
)

// Store reads and writes per-instance JSON files under Dir.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir %s: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

// GameLogPath is the action log of an instance.
func (s *Store) GameLogPath(instanceID int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("game_logs_%d.json", instanceID))
}

// AnalysisPath is the analysis artifact derived from an instance's log.
func (s *Store) AnalysisPath(instanceID int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("game_%d_analysis.json", instanceID))
}

// SaveGameLog writes the complete action log of a finished game.
func (s *Store) SaveGameLog(instanceID int, records []game.ActionRecord) error {
	if _, ok := game.FinalScores(records); !ok {
		return fmt.Errorf("instance %d: %w", instanceID, ErrIncompleteLog)
	}
	return writeJSON(s.GameLogPath(instanceID), records)
}

// LoadGameLog reads the action log of an instance.
func (s *Store) LoadGameLog(instanceID int) ([]game.ActionRecord, error) {
	var records []game.ActionRecord
	if err := readJSON(s.GameLogPath(instanceID), &records); err != nil {
		return nil, fmt.Errorf("instance %d: %w", instanceID, err)
	}
	return records, nil
}

// SaveAnalysis writes the analysis rows of an instance.
func (s *Store) SaveAnalysis(instanceID int, rows []Row) error {
	return writeJSON(s.AnalysisPath(instanceID), rows)
}

// LoadAnalysis reads back the analysis rows of an instance.
func (s *Store) LoadAnalysis(instanceID int) ([]Row, error) {
	var rows []Row
	if err := readJSON(s.AnalysisPath(instanceID), &rows); err != nil {
		return nil, fmt.Errorf("instance %d: %w", instanceID, err)
	}
	return rows, nil
}

// writeJSON writes v to a temporary file and renames it into place, so a
// reader never observes a partially written artifact.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrLogNotFound, path)
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
