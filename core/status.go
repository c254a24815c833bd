package core

// TaskStatus is the lifecycle state of a task instance.
type TaskStatus int

const (
	TaskStatusCreated TaskStatus = iota
	TaskStatusReady
	TaskStatusReserved
	TaskStatusInProgress
	TaskStatusSuspended
	TaskStatusCompleted
	TaskStatusCancelled
	TaskStatusFaulted
	TaskStatusObsolete
)

func (s TaskStatus) String() string {
	switch s {
	case TaskStatusCreated:
		return "Created"
	case TaskStatusReady:
		return "Ready"
	case TaskStatusReserved:
		return "Reserved"
	case TaskStatusInProgress:
		return "InProgress"
	case TaskStatusSuspended:
		return "Suspended"
	case TaskStatusCompleted:
		return "Completed"
	case TaskStatusCancelled:
		return "Cancelled"
	case TaskStatusFaulted:
		return "Faulted"
	case TaskStatusObsolete:
		return "Obsolete"
	default:
		return "Unknown"
	}
}

// Final reports whether the status is terminal. Terminal states have no
// outgoing transitions.
func (s TaskStatus) Final() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusCancelled, TaskStatusFaulted, TaskStatusObsolete:
		return true
	default:
		return false
	}
}
