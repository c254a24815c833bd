package history

import (
	"humantask/assignment"
	"humantask/backend/payload"
	"humantask/core"
)

type TaskCreatedAttributes struct {
	DefinitionID string `json:"definition_id,omitempty"`

	Key string `json:"key,omitempty"`

	Name string `json:"name,omitempty"`

	Priority int `json:"priority,omitempty"`

	Skippable bool `json:"skippable,omitempty"`

	CompletionPolicy core.CompletionPolicy `json:"completion_policy,omitempty"`

	// Localized presentation texts, keyed by language tag.
	Titles map[string]string `json:"titles,omitempty"`

	Subjects map[string]string `json:"subjects,omitempty"`

	Descriptions map[string]string `json:"descriptions,omitempty"`

	Input payload.Payload `json:"input,omitempty"`

	Assignments *assignment.PeopleAssignments `json:"assignments,omitempty"`

	Subtasks []core.Subtask `json:"subtasks,omitempty"`

	Attachments []core.Attachment `json:"attachments,omitempty"`

	Comments []core.Comment `json:"comments,omitempty"`
}
