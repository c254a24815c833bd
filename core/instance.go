package core

// TaskInstance identifies one task instance. The instance ID is the
// deterministic concatenation of the definition ID and the instance key.
type TaskInstance struct {
	// DefinitionID is the ID of the task definition this instance was
	// created from.
	DefinitionID string `json:"definition_id,omitempty"`

	// Key distinguishes instances of the same definition.
	Key string `json:"key,omitempty"`
}

func NewTaskInstance(definitionID, key string) *TaskInstance {
	return &TaskInstance{
		DefinitionID: definitionID,
		Key:          key,
	}
}

// InstanceID returns the combined instance identifier.
func (ti *TaskInstance) InstanceID() string {
	return ti.DefinitionID + "|" + ti.Key
}
