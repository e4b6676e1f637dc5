// Package risk validates the decoded output of the Risk stage.
package risk

import (
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/common"
)

// Stage is the name used in validation errors and journal entries.
const Stage = "risk"

var entryFields = []string{"req_id", "risk", "severity", "severity_locked", "test_cases"}

// ValidTypes defines the allowed test case type values
var ValidTypes = map[string]bool{
	"unit":           true,
	"integration":    true,
	"e2e":            true,
	"exploratory":    true,
	"non_functional": true,
}

// ValidSurfaces defines the allowed test case surface values
var ValidSurfaces = map[string]bool{
	"ui":       true,
	"api":      true,
	"service":  true,
	"workflow": true,
}

// Validate checks the Risk payload shape. The top level must be an array;
// anything else short-circuits with a single distinct issue, since per-entry
// checks are meaningless on the wrong shape. Otherwise every violation across
// all entries and nested test cases is collected before failing.
func Validate(data interface{}) error {
	entries, ok := data.([]interface{})
	if !ok {
		return &common.ValidationError{
			Stage:  Stage,
			Issues: []common.Issue{{Message: "expected a JSON array at the top level"}},
		}
	}

	var issues []common.Issue
	for _, item := range entries {
		entry, ok := item.(map[string]interface{})
		if !ok {
			issues = append(issues, common.Issue{
				Message: "risk entries must be objects",
			})
			continue
		}

		reqID := common.StringOr(entry, "req_id", "unknown")
		common.RequireKeys(entry, entryFields, reqID, &issues)

		tcs, present := entry["test_cases"]
		if !present {
			continue
		}
		list, ok := tcs.([]interface{})
		if !ok {
			issues = append(issues, common.Issue{
				Field:   reqID + ".test_cases",
				Message: "must be an array",
			})
			continue
		}
		for _, t := range list {
			tc, ok := t.(map[string]interface{})
			if !ok {
				issues = append(issues, common.Issue{
					Field:   reqID + ".test_cases",
					Message: "test case entries must be objects",
				})
				continue
			}
			validateTestCase(tc, &issues)
		}
	}

	if len(issues) > 0 {
		return &common.ValidationError{Stage: Stage, Issues: issues}
	}
	return nil
}

func validateTestCase(tc map[string]interface{}, issues *[]common.Issue) {
	tcID := common.StringOr(tc, "tc_id", "unknown")

	if typ, exists := tc["type"]; !exists {
		*issues = append(*issues, common.Issue{
			Field:   tcID + ".type",
			Message: "missing required key: type",
		})
	} else {
		common.RequireEnum(typ, tcID+".type", ValidTypes, issues)
	}

	if surface, exists := tc["surface"]; !exists {
		*issues = append(*issues, common.Issue{
			Field:   tcID + ".surface",
			Message: "missing required key: surface",
		})
	} else {
		common.RequireEnum(surface, tcID+".surface", ValidSurfaces, issues)
	}
}
