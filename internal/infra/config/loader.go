// Package config loads runtime settings from qraft.yml and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	appconfig "github.com/brsteele1975/qa-artifact-compression-workflow/internal/app/config"
)

// ConfigError reports missing or invalid startup configuration. Every
// configuration problem is fatal before any stage runs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return e.Reason
}

// RawSettings represents the structure of the qraft.yml file.
// Pointer fields distinguish "absent" from zero values.
type RawSettings struct {
	Model      *string `yaml:"model"`
	PromptsDir *string `yaml:"prompts_dir"`
	OutputDir  *string `yaml:"output_dir"`
	TimeoutSec *int    `yaml:"timeout_sec"`

	Storage *RawStorage `yaml:"storage"`
}

// RawStorage selects and configures the artifact store backend.
type RawStorage struct {
	Backend string `yaml:"backend"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
	Region  string `yaml:"region"`
}

// LoadSettings resolves runtime configuration.
// Priority: qraft.yml > defaults. The backend credential comes from the
// OPENAI_API_KEY environment variable and is resolved here, once, so its
// absence fails the run before any stage starts.
func LoadSettings(baseDir string) (*appconfig.Config, error) {
	cfg := appconfig.Config{
		Model:      "gpt-4o",
		PromptsDir: "prompts",
		OutputDir:  "output",
		Timeout:    120 * time.Second,
		Storage:    appconfig.StorageConfig{Backend: "local"},
	}

	settingPath := filepath.Join(baseDir, "qraft.yml")
	if data, err := os.ReadFile(settingPath); err == nil {
		var raw RawSettings
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &ConfigError{Reason: fmt.Sprintf("parse %s: %v", settingPath, err)}
		}
		applySettings(&cfg, &raw)
	}

	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if cfg.APIKey == "" {
		return nil, &ConfigError{Reason: "OPENAI_API_KEY is not set; export it before running the pipeline"}
	}

	if cfg.Storage.Backend == "s3" && cfg.Storage.Bucket == "" {
		return nil, &ConfigError{Reason: "storage backend s3 requires a bucket in qraft.yml"}
	}

	return &cfg, nil
}

func applySettings(cfg *appconfig.Config, raw *RawSettings) {
	if raw.Model != nil && *raw.Model != "" {
		cfg.Model = *raw.Model
	}
	if raw.PromptsDir != nil && *raw.PromptsDir != "" {
		cfg.PromptsDir = *raw.PromptsDir
	}
	if raw.OutputDir != nil && *raw.OutputDir != "" {
		cfg.OutputDir = *raw.OutputDir
	}
	if raw.TimeoutSec != nil && *raw.TimeoutSec > 0 {
		cfg.Timeout = time.Duration(*raw.TimeoutSec) * time.Second
	}
	if raw.Storage != nil {
		cfg.Storage = appconfig.StorageConfig{
			Backend: raw.Storage.Backend,
			Bucket:  raw.Storage.Bucket,
			Prefix:  raw.Storage.Prefix,
			Region:  raw.Storage.Region,
		}
		if cfg.Storage.Backend == "" {
			cfg.Storage.Backend = "local"
		}
	}
}
