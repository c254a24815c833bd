package task

import "fmt"

// RuleViolationError is returned when a command is rejected: wrong status,
// caller without a qualifying role, or a required argument missing. Rule
// violations are user-facing and non-retryable; no event is recorded.
type RuleViolationError struct {
	// Command is the rejected command.
	Command string

	// Field names the offending field, if the violation is about an
	// argument rather than status or role.
	Field string

	Message string
}

func (e *RuleViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Command, e.Field, e.Message)
	}

	return fmt.Sprintf("%s: %s", e.Command, e.Message)
}

func newStatusViolation(command string, status fmt.Stringer) error {
	return &RuleViolationError{
		Command: command,
		Message: fmt.Sprintf("not allowed in status %v", status),
	}
}

func newRoleViolation(command, userID string) error {
	return &RuleViolationError{
		Command: command,
		Message: fmt.Sprintf("user %q holds no qualifying role", userID),
	}
}

func newArgViolation(command, field, message string) error {
	return &RuleViolationError{
		Command: command,
		Field:   field,
		Message: message,
	}
}
