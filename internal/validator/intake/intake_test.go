package intake_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/common"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/intake"
)

func decode(t *testing.T, payload string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(payload), &v))
	return v
}

func issueFields(t *testing.T, err error) []string {
	t.Helper()
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, len(verr.Issues))
	for i, issue := range verr.Issues {
		fields[i] = issue.Field
	}
	return fields
}

func TestValidate_CompletePayload(t *testing.T) {
	payload := decode(t, `{
		"plan_context": {"purpose": "p", "in_scope": "i", "out_of_scope": "o"},
		"requirements": [
			{"req_id": "REQ-001", "prd_ref": "Boards", "ambiguity_flags": [], "extra": "passes through"},
			{"req_id": "REQ-002", "prd_ref": "Cards", "ambiguity_flags": ["unclear wording"]}
		]
	}`)

	assert.NoError(t, intake.Validate(payload))
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantFields []string
	}{
		{
			name:       "missing plan_context entirely",
			payload:    `{"requirements": []}`,
			wantFields: []string{"plan_context"},
		},
		{
			name: "missing plan_context subfields",
			payload: `{
				"plan_context": {"purpose": "p"},
				"requirements": []
			}`,
			wantFields: []string{"plan_context.in_scope", "plan_context.out_of_scope"},
		},
		{
			name:       "missing requirements",
			payload:    `{"plan_context": {"purpose": "p", "in_scope": "i", "out_of_scope": "o"}}`,
			wantFields: []string{"requirements"},
		},
		{
			name: "requirement missing fields keyed by its req_id",
			payload: `{
				"plan_context": {"purpose": "p", "in_scope": "i", "out_of_scope": "o"},
				"requirements": [{"req_id": "REQ-002", "ambiguity_flags": []}]
			}`,
			wantFields: []string{"REQ-002.prd_ref"},
		},
		{
			name: "requirement without req_id uses placeholder",
			payload: `{
				"plan_context": {"purpose": "p", "in_scope": "i", "out_of_scope": "o"},
				"requirements": [{"prd_ref": "Boards"}]
			}`,
			wantFields: []string{"unknown.req_id", "unknown.ambiguity_flags"},
		},
		{
			name:       "all top-level fields missing",
			payload:    `{}`,
			wantFields: []string{"plan_context", "requirements"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := intake.Validate(decode(t, tt.payload))
			require.Error(t, err)

			// The issue list contains exactly the missing fields, no more.
			assert.Equal(t, tt.wantFields, issueFields(t, err))
		})
	}
}

func TestValidate_NonObjectTopLevel(t *testing.T) {
	err := intake.Validate(decode(t, `["not", "an", "object"]`))
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Message, "JSON object")
}
