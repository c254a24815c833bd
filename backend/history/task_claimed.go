package history

import "humantask/core"

type TaskClaimedAttributes struct {
	Owner core.UserReference `json:"owner,omitempty"`
}
