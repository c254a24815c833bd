package history

import (
	"time"

	"humantask/core"
)

type CommentUpdatedAttributes struct {
	CommentID string `json:"comment_id,omitempty"`

	Text string `json:"text,omitempty"`

	ModifiedBy core.UserReference `json:"modified_by,omitempty"`

	ModifiedAt time.Time `json:"modified_at,omitempty"`
}
