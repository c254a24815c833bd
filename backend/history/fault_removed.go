package history

type FaultRemovedAttributes struct {
	FaultID string `json:"fault_id,omitempty"`
}
