package metrickeys

const (
	Prefix = "humantask."

	TaskCreated = Prefix + "task.created"
	TaskRemoved = Prefix + "task.removed"

	CommandExecuted = Prefix + "command.executed"
	CommandRejected = Prefix + "command.rejected"

	AssignmentResolved = Prefix + "assignment.resolved"
	AssignmentDuration = Prefix + "assignment.duration"

	DirectoryCacheHit  = Prefix + "directory.cache.hit"
	DirectoryCacheMiss = Prefix + "directory.cache.miss"
)

// Tag names
const (
	// Backend being used
	Backend = "backend"

	Command = "command"

	Definition = "definition"
)
