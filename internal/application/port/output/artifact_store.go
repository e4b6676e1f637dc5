package output

import "context"

// ArtifactStore is the interface for persisting pipeline artifacts.
// Supports both local filesystem and cloud storage backends.
type ArtifactStore interface {
	// SaveJSON persists structured data as stable, human-diffable JSON at
	// the given path, creating parent directories as needed. Existing
	// content is overwritten unconditionally.
	SaveJSON(ctx context.Context, path string, v interface{}) error

	// SaveText persists raw text at the given path, creating parent
	// directories as needed. Existing content is overwritten.
	SaveText(ctx context.Context, path string, content string) error

	// LoadJSON reads back a previously persisted JSON artifact.
	LoadJSON(ctx context.Context, path string) (interface{}, error)
}
