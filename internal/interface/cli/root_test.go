package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot(t *testing.T) {
	root := NewRoot()
	assert.Equal(t, "qraft", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "run")
}

func TestRunCmd_RequiresExactlyOneArg(t *testing.T) {
	root := NewRoot()
	root.SetArgs([]string{"run"})
	root.SilenceErrors = true

	err := root.Execute()
	require.Error(t, err)
}

func TestRunCmd_MissingCredentialIsConfigError(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	err := runPipeline(nil, "sample_input/prd_clean_agile.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}
