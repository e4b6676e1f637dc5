// Package parser sanitizes raw model output and decodes it as JSON.
package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports sanitized output that could not be decoded. It carries
// the full sanitized text so the failure can be diagnosed without rerunning
// the stage.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("output could not be parsed as JSON: %v\n\nraw output:\n%s", e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Sanitize strips at most one leading code fence (tagged "```json" first,
// then a bare "```") and at most one trailing "```", trimming surrounding
// whitespace. Input without fences passes through unchanged, so the step is
// idempotent on already-clean text.
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// Parse sanitizes raw output and decodes it as JSON. A decode failure yields
// a ParseError with the sanitized text attached; no partial or default data
// is ever produced.
func Parse(raw string) (interface{}, error) {
	cleaned := Sanitize(raw)
	var decoded interface{}
	if err := json.Unmarshal([]byte(cleaned), &decoded); err != nil {
		return nil, &ParseError{Raw: cleaned, Err: err}
	}
	return decoded, nil
}
