package history

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EventType uint

const (
	_ EventType = iota

	EventType_TaskCreated
	EventType_TaskActivated
	EventType_TaskDeleted

	EventType_TaskClaimed
	EventType_TaskReleased
	EventType_TaskDelegated
	EventType_TaskForwarded

	EventType_TaskStarted
	EventType_TaskSuspended
	EventType_TaskResumed

	EventType_TaskCompleted
	EventType_TaskCancelled
	EventType_TaskSkipped
	EventType_TaskFaulted

	EventType_PriorityChanged

	EventType_FaultAdded
	EventType_FaultRemoved

	EventType_AttachmentAdded
	EventType_AttachmentRemoved

	EventType_CommentAdded
	EventType_CommentUpdated
	EventType_CommentRemoved
)

func (et EventType) String() string {
	switch et {
	case EventType_TaskCreated:
		return "TaskCreated"
	case EventType_TaskActivated:
		return "TaskActivated"
	case EventType_TaskDeleted:
		return "TaskDeleted"

	case EventType_TaskClaimed:
		return "TaskClaimed"
	case EventType_TaskReleased:
		return "TaskReleased"
	case EventType_TaskDelegated:
		return "TaskDelegated"
	case EventType_TaskForwarded:
		return "TaskForwarded"

	case EventType_TaskStarted:
		return "TaskStarted"
	case EventType_TaskSuspended:
		return "TaskSuspended"
	case EventType_TaskResumed:
		return "TaskResumed"

	case EventType_TaskCompleted:
		return "TaskCompleted"
	case EventType_TaskCancelled:
		return "TaskCancelled"
	case EventType_TaskSkipped:
		return "TaskSkipped"
	case EventType_TaskFaulted:
		return "TaskFaulted"

	case EventType_PriorityChanged:
		return "PriorityChanged"

	case EventType_FaultAdded:
		return "FaultAdded"
	case EventType_FaultRemoved:
		return "FaultRemoved"

	case EventType_AttachmentAdded:
		return "AttachmentAdded"
	case EventType_AttachmentRemoved:
		return "AttachmentRemoved"

	case EventType_CommentAdded:
		return "CommentAdded"
	case EventType_CommentUpdated:
		return "CommentUpdated"
	case EventType_CommentRemoved:
		return "CommentRemoved"
	default:
		return "Unknown"
	}
}

type Event struct {
	// ID is a unique identifier for this event
	ID string `json:"id,omitempty"`

	Type EventType `json:"type,omitempty"`

	Timestamp time.Time `json:"timestamp,omitempty"`

	// SequenceID is the position of this event in its instance's history.
	// Assigned by the event store when the event is appended.
	SequenceID int64 `json:"sequence_id,omitempty"`

	// Attributes are event type specific attributes
	Attributes any `json:"attr,omitempty"`
}

func (e *Event) String() string {
	return strconv.Itoa(int(e.Type))
}

func NewTaskEvent(timestamp time.Time, eventType EventType, attributes any) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Timestamp:  timestamp,
		Attributes: attributes,
	}
}
