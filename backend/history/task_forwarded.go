package history

import "humantask/core"

type TaskForwardedAttributes struct {
	ForwardedBy core.UserReference `json:"forwarded_by,omitempty"`

	// Recipients are added to the potential owners; the forwarder is
	// removed from them if present.
	Recipients []core.UserReference `json:"recipients,omitempty"`
}
