package common

import (
	"fmt"
	"sort"
	"strings"
)

// RequireKeys checks that all required keys are present in data.
// Missing keys are reported as "<subject>.<key>", or as the bare key name
// when subject is empty.
func RequireKeys(data map[string]interface{}, required []string, subject string, issues *[]Issue) {
	for _, key := range required {
		if _, exists := data[key]; !exists {
			field := key
			if subject != "" {
				field = subject + "." + key
			}
			*issues = append(*issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("missing required key: %s", key),
			})
		}
	}
}

// RequireEnum validates that a value is a string within allowed enum values
func RequireEnum(value interface{}, field string, allowed map[string]bool, issues *[]Issue) {
	strVal, ok := value.(string)
	if !ok {
		*issues = append(*issues, Issue{
			Field:   field,
			Message: "must be a string",
		})
		return
	}

	if !allowed[strVal] {
		allowedList := make([]string, 0, len(allowed))
		for k := range allowed {
			allowedList = append(allowedList, k)
		}
		sort.Strings(allowedList)
		*issues = append(*issues, Issue{
			Field:   field,
			Message: fmt.Sprintf("invalid value: %s (must be one of: %s)", strVal, strings.Join(allowedList, "|")),
		})
	}
}

// StringOr returns data[key] as a string, or fallback when the key is absent
// or holds a non-string value.
func StringOr(data map[string]interface{}, key, fallback string) string {
	if v, ok := data[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
