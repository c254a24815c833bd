package backend

type Stats struct {
	// ActiveTasks is the number of task instances not yet in a terminal
	// status.
	ActiveTasks int64

	// TasksByStatus counts instances per lifecycle status name.
	TasksByStatus map[string]int64
}
