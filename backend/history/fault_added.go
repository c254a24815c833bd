package history

import "humantask/core"

type FaultAddedAttributes struct {
	Fault core.Fault `json:"fault,omitempty"`
}
