// Package prompt loads stage instruction templates from a prompts directory.
package prompt

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	infraconfig "github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/config"
)

// Stage prompt file names, one per pipeline stage.
var stageFiles = map[string]string{
	"intake": "intake_prompt.md",
	"risk":   "risk_prompt.md",
	"review": "review_prompt.md",
}

// Repository resolves stage names to template content. Template content is
// opaque free text; only its absence is an error, and that error is a
// configuration failure.
type Repository struct {
	fs  afero.Fs
	dir string
}

// NewRepository creates a file-based prompt template repository.
func NewRepository(fs afero.Fs, dir string) *Repository {
	return &Repository{fs: fs, dir: dir}
}

// Load returns the instruction template for a stage.
func (r *Repository) Load(stage string) (string, error) {
	name, ok := stageFiles[stage]
	if !ok {
		return "", fmt.Errorf("unknown stage: %s", stage)
	}

	promptPath := filepath.Join(r.dir, name)
	template, err := afero.ReadFile(r.fs, promptPath)
	if err != nil {
		return "", &infraconfig.ConfigError{Reason: fmt.Sprintf("prompt template not found: %s", promptPath)}
	}
	return string(template), nil
}
