// Package intake validates the decoded output of the Intake stage.
package intake

import (
	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/validator/common"
)

// Stage is the name used in validation errors and journal entries.
const Stage = "intake"

var planContextFields = []string{"purpose", "in_scope", "out_of_scope"}
var requirementFields = []string{"req_id", "prd_ref", "ambiguity_flags"}

// Validate checks the Intake payload shape: a plan_context object with its
// three required fields, and a requirements array whose entries each carry
// req_id, prd_ref and ambiguity_flags. Extra fields pass through untouched.
// Every violation is collected before failing.
func Validate(data interface{}) error {
	root, ok := data.(map[string]interface{})
	if !ok {
		return &common.ValidationError{
			Stage:  Stage,
			Issues: []common.Issue{{Message: "expected a JSON object at the top level"}},
		}
	}

	var issues []common.Issue

	if pc, exists := root["plan_context"]; !exists {
		issues = append(issues, common.Issue{
			Field:   "plan_context",
			Message: "missing required key: plan_context",
		})
	} else if pcMap, ok := pc.(map[string]interface{}); !ok {
		issues = append(issues, common.Issue{
			Field:   "plan_context",
			Message: "must be an object",
		})
	} else {
		common.RequireKeys(pcMap, planContextFields, "plan_context", &issues)
	}

	if reqs, exists := root["requirements"]; !exists {
		issues = append(issues, common.Issue{
			Field:   "requirements",
			Message: "missing required key: requirements",
		})
	} else if list, ok := reqs.([]interface{}); !ok {
		issues = append(issues, common.Issue{
			Field:   "requirements",
			Message: "must be an array",
		})
	} else {
		for _, item := range list {
			req, ok := item.(map[string]interface{})
			if !ok {
				issues = append(issues, common.Issue{
					Field:   "requirements",
					Message: "requirement entries must be objects",
				})
				continue
			}
			common.RequireKeys(req, requirementFields, common.StringOr(req, "req_id", "unknown"), &issues)
		}
	}

	if len(issues) > 0 {
		return &common.ValidationError{Stage: Stage, Issues: issues}
	}
	return nil
}
