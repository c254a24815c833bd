package backend

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"

	"humantask/backend/converter"
	"humantask/backend/history"
	"humantask/backend/metrics"
	"humantask/core"
)

var (
	ErrTaskNotFound      = errors.New("task instance not found")
	ErrTaskAlreadyExists = errors.New("task instance already exists")
	ErrTaskNotFinished   = errors.New("task instance is not finished")
)

const TracerName = "humantask"

// Backend is the event store for task instances. Every state-changing
// command is persisted as one immutable, timestamped, instance-scoped event
// record with a stable type discriminator; aggregate state is derived by
// replaying those records.
type Backend interface {
	// CreateTaskInstance stores a new task instance together with its
	// creation events. Returns ErrTaskAlreadyExists for a duplicate
	// instance id.
	CreateTaskInstance(ctx context.Context, instance *core.TaskInstance, events []*history.Event) error

	// AppendEvents appends events to the instance's history, assigning
	// sequence ids, and records the status the events led to.
	AppendEvents(ctx context.Context, instance *core.TaskInstance, status core.TaskStatus, events []*history.Event) error

	// GetTaskHistory returns the instance's history in sequence order.
	// When lastSequenceID is given, only events after it are returned.
	GetTaskHistory(ctx context.Context, instance *core.TaskInstance, lastSequenceID *int64) ([]*history.Event, error)

	// RemoveTaskInstance removes an instance and its history from this
	// store. Refused with ErrTaskNotFinished while the instance's
	// recorded status is not terminal.
	RemoveTaskInstance(ctx context.Context, instance *core.TaskInstance) error

	// GetStats returns stats about the backend
	GetStats(ctx context.Context) (*Stats, error)

	// Tracer returns the configured trace provider for the backend
	Tracer() trace.Tracer

	// Metrics returns the configured metrics client for the backend
	Metrics() metrics.Client

	// Converter returns the configured payload converter
	Converter() converter.Converter

	// Options returns the configured options for the backend
	Options() *Options

	// Close closes any underlying resources
	Close() error
}
