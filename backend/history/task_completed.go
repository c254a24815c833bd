package history

import "humantask/backend/payload"

type TaskCompletedAttributes struct {
	Outcome string `json:"outcome,omitempty"`

	Output payload.Payload `json:"output,omitempty"`

	// CompletionBehavior is the name of the matched completion behavior,
	// if the definition declared any.
	CompletionBehavior string `json:"completion_behavior,omitempty"`
}
