package history

type TaskSuspendedAttributes struct {
	Reason string `json:"reason,omitempty"`
}
