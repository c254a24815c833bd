package core

import (
	"time"

	"humantask/backend/payload"
)

// Child entities are owned exclusively by the task that contains them and
// have no lifecycle outside their parent.

type Comment struct {
	ID string `json:"id,omitempty"`

	Text string `json:"text,omitempty"`

	AddedBy UserReference `json:"added_by,omitempty"`

	AddedAt time.Time `json:"added_at,omitempty"`

	LastModifiedBy UserReference `json:"last_modified_by,omitempty"`

	LastModifiedAt time.Time `json:"last_modified_at,omitempty"`
}

type Attachment struct {
	ID string `json:"id,omitempty"`

	Name string `json:"name,omitempty"`

	ContentType string `json:"content_type,omitempty"`

	Content payload.Payload `json:"content,omitempty"`

	AttachedBy UserReference `json:"attached_by,omitempty"`

	AttachedAt time.Time `json:"attached_at,omitempty"`
}

type Fault struct {
	ID string `json:"id,omitempty"`

	Name string `json:"name,omitempty"`

	Data payload.Payload `json:"data,omitempty"`
}

// Subtask references a child task instance seeded at creation time.
type Subtask struct {
	ID string `json:"id,omitempty"`

	DefinitionID string `json:"definition_id,omitempty"`

	Key string `json:"key,omitempty"`
}
