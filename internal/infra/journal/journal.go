// Package journal appends per-stage run records as NDJSON.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
)

// Entry is one journal record. One entry is written per stage attempt,
// successful or not.
type Entry struct {
	Ts        string `json:"ts"`
	RunID     string `json:"run_id"`
	Stage     string `json:"stage"`
	Decision  string `json:"decision"` // "OK" or "FAILED"
	ElapsedMs int64  `json:"elapsed_ms"`
	Error     string `json:"error"`
	Artifact  string `json:"artifact"`
}

// Writer appends entries to a single NDJSON file under the run's output
// directory. Each Writer carries a fresh ULID run identifier.
type Writer struct {
	fs    afero.Fs
	path  string
	runID string
}

// NewWriter creates a journal writer for one pipeline run.
func NewWriter(fs afero.Fs, path string) *Writer {
	return &Writer{
		fs:    fs,
		path:  path,
		runID: ulid.Make().String(),
	}
}

// RunID returns the run identifier stamped into every entry.
func (w *Writer) RunID() string {
	return w.runID
}

// Record appends one entry. The journal is observability, not state: callers
// treat a write failure as non-fatal.
func (w *Writer) Record(stage, decision string, elapsed time.Duration, errMsg, artifact string) error {
	entry := Entry{
		Ts:        time.Now().UTC().Format(time.RFC3339Nano),
		RunID:     w.runID,
		Stage:     stage,
		Decision:  decision,
		ElapsedMs: elapsed.Milliseconds(),
		Error:     errMsg,
		Artifact:  artifact,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	if err := w.fs.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create journal directory: %w", err)
	}

	f, err := w.fs.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append journal entry: %w", err)
	}
	return nil
}
