package history

import (
	"encoding/json"
	"fmt"
)

func (e *Event) UnmarshalJSON(data []byte) error {
	type Aevent Event
	a := &struct {
		// Attributes allows us to defer unmarshaling the events. Has to match the struct tag in Event
		Attributes json.RawMessage `json:"attr,omitempty"`
		*Aevent
	}{}

	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	*e = *(*Event)(a.Aevent)
	attributes, err := DeserializeAttributes(e.Type, a.Attributes)
	if err != nil {
		return err
	}

	e.Attributes = attributes

	return nil
}

func SerializeAttributes(attributes any) ([]byte, error) {
	return json.Marshal(attributes)
}

func DeserializeAttributes(eventType EventType, attributes []byte) (attr any, err error) {
	switch eventType {
	case EventType_TaskCreated:
		attr = &TaskCreatedAttributes{}
	case EventType_TaskActivated:
		attr = &TaskActivatedAttributes{}
	case EventType_TaskDeleted:
		attr = &TaskDeletedAttributes{}

	case EventType_TaskClaimed:
		attr = &TaskClaimedAttributes{}
	case EventType_TaskReleased:
		attr = &TaskReleasedAttributes{}
	case EventType_TaskDelegated:
		attr = &TaskDelegatedAttributes{}
	case EventType_TaskForwarded:
		attr = &TaskForwardedAttributes{}

	case EventType_TaskStarted:
		attr = &TaskStartedAttributes{}
	case EventType_TaskSuspended:
		attr = &TaskSuspendedAttributes{}
	case EventType_TaskResumed:
		attr = &TaskResumedAttributes{}

	case EventType_TaskCompleted:
		attr = &TaskCompletedAttributes{}
	case EventType_TaskCancelled:
		attr = &TaskCancelledAttributes{}
	case EventType_TaskSkipped:
		attr = &TaskSkippedAttributes{}
	case EventType_TaskFaulted:
		attr = &TaskFaultedAttributes{}

	case EventType_PriorityChanged:
		attr = &PriorityChangedAttributes{}

	case EventType_FaultAdded:
		attr = &FaultAddedAttributes{}
	case EventType_FaultRemoved:
		attr = &FaultRemovedAttributes{}

	case EventType_AttachmentAdded:
		attr = &AttachmentAddedAttributes{}
	case EventType_AttachmentRemoved:
		attr = &AttachmentRemovedAttributes{}

	case EventType_CommentAdded:
		attr = &CommentAddedAttributes{}
	case EventType_CommentUpdated:
		attr = &CommentUpdatedAttributes{}
	case EventType_CommentRemoved:
		attr = &CommentRemovedAttributes{}

	default:
		return nil, fmt.Errorf("unknown event type %v when deserializing attributes", eventType)
	}

	err = json.Unmarshal(attributes, &attr)
	return attr, err
}
