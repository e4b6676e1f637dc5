package parser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/infra/parser"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "tagged fence with surrounding whitespace",
			raw:  "  \n```json\n{\"a\": 1}\n```\n  ",
			want: "{\"a\": 1}",
		},
		{
			name: "bare fence",
			raw:  "```\n{\"a\": 1}\n```",
			want: "{\"a\": 1}",
		},
		{
			name: "no fence is a no-op",
			raw:  "{\"a\": 1}",
			want: "{\"a\": 1}",
		},
		{
			name: "only surrounding whitespace",
			raw:  "\n\n{\"a\": 1}\n",
			want: "{\"a\": 1}",
		},
		{
			name: "idempotent on already sanitized input",
			raw:  parser.Sanitize("```json\n{\"a\": 1}\n```"),
			want: "{\"a\": 1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.Sanitize(tt.raw))
		})
	}
}

func TestParse_FencedEqualsPlain(t *testing.T) {
	payload := `{"plan_context": {"purpose": "p"}, "requirements": []}`

	plain, err := parser.Parse(payload)
	require.NoError(t, err)

	fenced, err := parser.Parse("  ```json\n" + payload + "\n```  ")
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
}

func TestParse_ArrayTopLevel(t *testing.T) {
	decoded, err := parser.Parse("```json\n[{\"req_id\": \"REQ-001\"}]\n```")
	require.NoError(t, err)

	entries, ok := decoded.([]interface{})
	require.True(t, ok)
	assert.Len(t, entries, 1)
}

func TestParse_DecodeFailure(t *testing.T) {
	_, err := parser.Parse("```json\nThe model apologizes instead of answering.\n```")
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, errors.As(err, &perr))
	// The sanitized text travels with the error for diagnosis.
	assert.Equal(t, "The model apologizes instead of answering.", perr.Raw)
	assert.Contains(t, err.Error(), "raw output")
	assert.NotNil(t, perr.Unwrap())
}
