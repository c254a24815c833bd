package history

import "humantask/core"

type TaskReleasedAttributes struct {
	// ReleasedBy is the user that gave up or revoked ownership.
	ReleasedBy core.UserReference `json:"released_by,omitempty"`
}
