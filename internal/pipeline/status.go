// internal/pipeline/status.go
package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// StatusLog is the append-only, line-per-instance record of a batch. Writers
// from any number of goroutines are serialized so lines never interleave.
type StatusLog struct {
	mu   sync.Mutex
	path string
}

// OpenStatusLog prepares a status log at path, creating its directory.
// Existing content is kept.
func OpenStatusLog(path string) (*StatusLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create status log dir: %w", err)
	}
	return &StatusLog{path: path}, nil
}

// Path returns the file the log appends to.
func (l *StatusLog) Path() string { return l.path }

// Record appends the status line of r.
func (l *StatusLog) Record(r Result) error {
	line := StatusLine(r)

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// StatusLine formats the status of r as one newline-terminated line.
func StatusLine(r Result) string {
	if r.OK() {
		return fmt.Sprintf("Game %d completed successfully.\n", r.InstanceID)
	}
	detail := strings.Join(strings.Fields(r.Err.Error()), " ")
	return fmt.Sprintf("Game %d failed with error: %s\n", r.InstanceID, detail)
}

// ScanSuccessful returns the distinct instance ids that have a success line,
// in ascending order. Lines that do not parse, whatever their length, are
// ignored; only a read failure is returned as an error.
func ScanSuccessful(r io.Reader) ([]int, error) {
	seen := make(map[int]struct{})
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if id, ok := parseSuccess(line); ok {
			seen[id] = struct{}{}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// parseSuccess extracts the id of a "Game <id> completed successfully."
// line. Ids are positive and written as plain digits.
func parseSuccess(line string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "Game" || fields[2] != "completed" || fields[3] != "successfully." {
		return 0, false
	}
	for _, c := range fields[1] {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// SuccessfulIDs scans the status log at path. A missing file has no
// successful instances.
func SuccessfulIDs(path string) ([]int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ScanSuccessful(f)
}
