package history

type TaskSkippedAttributes struct {
	Reason string `json:"reason,omitempty"`
}
