package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/persistence/file"
)

// LocalArtifactStore implements ArtifactStore on the local filesystem.
// JSON artifacts are written two-space indented with a trailing newline so
// runs diff cleanly in review.
type LocalArtifactStore struct {
	fs afero.Fs
}

// NewLocalArtifactStore creates a filesystem-backed artifact store.
func NewLocalArtifactStore(fs afero.Fs) *LocalArtifactStore {
	return &LocalArtifactStore{fs: fs}
}

// SaveJSON persists structured data as formatted JSON.
func (s *LocalArtifactStore) SaveJSON(ctx context.Context, path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return file.WriteFileAtomic(s.fs, path, append(data, '\n'))
}

// SaveText persists raw text.
func (s *LocalArtifactStore) SaveText(ctx context.Context, path string, content string) error {
	return file.WriteFileAtomic(s.fs, path, []byte(content))
}

// LoadJSON reads back a persisted JSON artifact.
func (s *LocalArtifactStore) LoadJSON(ctx context.Context, path string) (interface{}, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal artifact %s: %w", path, err)
	}
	return decoded, nil
}

var _ output.ArtifactStore = (*LocalArtifactStore)(nil)
