// Package review validates the rendered Review document.
package review

import (
	"strings"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/common"
)

// Stage is the name used in validation errors and journal entries.
const Stage = "review"

// RequiredSections lists the section markers a test plan must contain.
// Substring presence is enough; order and surrounding content are free.
var RequiredSections = []string{
	"## Purpose",
	"## In Scope",
	"## Out of Scope",
	"## Review Decision",
}

// Validate checks that the document contains all four required section
// markers, reporting exactly the missing ones. The content itself stays
// opaque text.
func Validate(content string) error {
	var issues []common.Issue
	for _, section := range RequiredSections {
		if !strings.Contains(content, section) {
			issues = append(issues, common.Issue{
				Field:   section,
				Message: "missing required section",
			})
		}
	}

	if len(issues) > 0 {
		return &common.ValidationError{Stage: Stage, Issues: issues}
	}
	return nil
}
