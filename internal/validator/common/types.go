package common

import (
	"fmt"
	"strings"
)

// Issue represents a single validation issue
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError aggregates every issue found during one validation pass.
// Validators never stop at the first problem; the run fails once with the
// complete list.
type ValidationError struct {
	Stage  string
	Issues []Issue
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s output failed validation (%d issues):", e.Stage, len(e.Issues))
	for _, issue := range e.Issues {
		sb.WriteString("\n  ")
		if issue.Field != "" {
			sb.WriteString(issue.Field)
			sb.WriteString(": ")
		}
		sb.WriteString(issue.Message)
	}
	return sb.String()
}
