package review_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/common"
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/review"
)

func TestValidate_AllSectionsPresent(t *testing.T) {
	// Order is unconstrained and surrounding content is free.
	doc := `# Test Plan qraft-v1-prd_clean_agile

## Review Decision

- [ ] Approve
- [ ] Revise

## Out of Scope
Mobile applications.

## Purpose
Verify the kanban board release.

Some commentary between sections.

## In Scope
Boards, cards, collaboration.
`
	assert.NoError(t, review.Validate(doc))
}

func TestValidate_MissingSection(t *testing.T) {
	doc := "## Purpose\n\n## In Scope\n\n## Out of Scope\n"

	err := review.Validate(doc)
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	// Exactly the one missing marker is reported.
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "## Review Decision", verr.Issues[0].Field)
}

func TestValidate_ReportsEveryMissingSection(t *testing.T) {
	err := review.Validate("nothing resembling a test plan")
	require.Error(t, err)

	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 4)

	fields := make([]string, len(verr.Issues))
	for i, issue := range verr.Issues {
		fields[i] = issue.Field
	}
	assert.Equal(t, review.RequiredSections, fields)
}
