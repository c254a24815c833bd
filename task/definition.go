package task

import (
	"encoding/json"

	"humantask/assignment"
	"humantask/core"
)

// Definition is a stored task template. Instances are created from a
// definition plus creation-time overrides.
type Definition struct {
	ID string `json:"id" validate:"required"`

	Name string `json:"name,omitempty"`

	// KeyExpression, when set, is evaluated against the task input to
	// produce the instance key. Without it, and without a key override on
	// the creation request, a random short key is synthesized.
	KeyExpression string `json:"key_expression,omitempty"`

	Priority int `json:"priority,omitempty"`

	Skippable bool `json:"skippable,omitempty"`

	CompletionPolicy core.CompletionPolicy `json:"completion_policy,omitempty"`

	// Localized presentation texts, keyed by language tag.
	Titles map[string]string `json:"titles,omitempty"`

	Subjects map[string]string `json:"subjects,omitempty"`

	Descriptions map[string]string `json:"descriptions,omitempty"`

	// InputSchema is an optional JSON schema the task input is validated
	// against at creation time.
	InputSchema json.RawMessage `json:"input_schema,omitempty"`

	Assignments *assignment.PeopleAssignmentsDefinition `json:"assignments,omitempty"`

	// CompletionBehaviors name outcomes; completing a task records the
	// name of the first behavior matching the outcome.
	CompletionBehaviors []CompletionBehavior `json:"completion_behaviors,omitempty" validate:"dive"`

	Subtasks []core.Subtask `json:"subtasks,omitempty"`
}

type CompletionBehavior struct {
	Name string `json:"name" validate:"required"`

	// Outcome this behavior matches. Empty matches any outcome.
	Outcome string `json:"outcome,omitempty"`
}

// MatchCompletionBehavior returns the name of the first behavior matching
// the outcome, or empty if none matches.
func (d *Definition) MatchCompletionBehavior(outcome string) string {
	for _, b := range d.CompletionBehaviors {
		if b.Outcome == "" || b.Outcome == outcome {
			return b.Name
		}
	}

	return ""
}
