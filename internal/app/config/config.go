// Package config defines the resolved runtime configuration for a run.
package config

import "time"

// Config carries everything a pipeline run needs, resolved once at startup.
type Config struct {
	APIKey     string        // generation backend credential
	Model      string        // pinned model identifier
	PromptsDir string        // directory holding stage instruction templates
	OutputDir  string        // root for per-run artifact directories
	Timeout    time.Duration // transport timeout for one backend call
	Storage    StorageConfig
}

// StorageConfig selects the artifact store backend.
type StorageConfig struct {
	Backend string // "local" (default) or "s3"
	Bucket  string
	Prefix  string
	Region  string
}
