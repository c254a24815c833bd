package history

type TaskCancelledAttributes struct {
	Reason string `json:"reason,omitempty"`
}
