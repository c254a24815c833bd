package history

import "humantask/core"

type TaskDelegatedAttributes struct {
	DelegatedBy core.UserReference `json:"delegated_by,omitempty"`

	// Delegatee becomes the actual owner and is added to the potential
	// owners.
	Delegatee core.UserReference `json:"delegatee,omitempty"`
}
