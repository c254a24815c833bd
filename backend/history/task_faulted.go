package history

import "humantask/core"

type TaskFaultedAttributes struct {
	Faults []core.Fault `json:"faults,omitempty"`
}
