package core

// CompletionPolicy controls from which status a task may be completed.
type CompletionPolicy int

const (
	// CompleteFromInProgress requires the task to be started before it can
	// be completed.
	CompleteFromInProgress CompletionPolicy = iota

	// CompleteFromReserved additionally allows completing a claimed task
	// that was never started.
	CompleteFromReserved
)

func (p CompletionPolicy) String() string {
	switch p {
	case CompleteFromInProgress:
		return "CompleteFromInProgress"
	case CompleteFromReserved:
		return "CompleteFromReserved"
	default:
		return "Unknown"
	}
}
