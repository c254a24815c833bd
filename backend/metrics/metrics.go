// Package metrics defines the client interface task stores and the task
// client report operational metrics through.
package metrics

import "time"

// Tags label a metric with dimensions such as the task definition id or
// the store implementation.
type Tags map[string]string

type Client interface {
	// Counter records an increment of a monotonic count, such as tasks
	// created or commands executed.
	Counter(name string, tags Tags, value int64)

	// Distribution records a single sample of a value distribution.
	Distribution(name string, tags Tags, value float64)

	// Gauge records the current value of a level, such as active tasks.
	Gauge(name string, tags Tags, value int64)

	// Timing records the duration of an operation, such as an
	// assignment resolution.
	Timing(name string, tags Tags, duration time.Duration)

	// WithTags returns a client that attaches the given tags to every
	// metric it records.
	WithTags(tags Tags) Client
}
