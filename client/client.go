package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"humantask/assignment"
	"humantask/backend"
	"humantask/backend/history"
	"humantask/backend/metrics"
	"humantask/backend/payload"
	"humantask/core"
	"humantask/directory"
	"humantask/expression"
	"humantask/internal/log"
	"humantask/internal/metrickeys"
	"humantask/task"
)

// CreateTaskOptions carry per-instance inputs for creating a task from a
// definition.
type CreateTaskOptions struct {
	// Key overrides the instance key. When empty, the definition's key
	// expression is evaluated; without one a random key is synthesized.
	Key string

	// Input is the task input document. Converted with the backend's
	// payload converter.
	Input any

	// Context is the contextual object made available to runtime
	// expressions during key and assignment resolution.
	Context map[string]any

	// Priority overrides the definition's priority.
	Priority *int

	// Assignments replaces the definition's assignment template for this
	// instance.
	Assignments *assignment.PeopleAssignmentsDefinition
}

type Client struct {
	backend  backend.Backend
	clock    clock.Clock
	registry *expression.Registry
	resolver *assignment.Resolver
	validate *validator.Validate
}

type ClientOption func(*Client)

// WithEvaluator registers an additional expression evaluator under the
// given language name.
func WithEvaluator(language string, evaluator expression.Evaluator) ClientOption {
	return func(c *Client) {
		c.registry.Register(language, evaluator)
	}
}

func New(b backend.Backend, dir directory.UserDirectory, opts ...ClientOption) *Client {
	registry := expression.NewRegistry()
	registry.Register(expression.PathLanguage, &expression.PathEvaluator{})

	c := &Client{
		backend:  b,
		clock:    b.Options().Clock,
		registry: registry,
		resolver: assignment.NewResolver(registry, dir, b.Options().Logger),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CreateTask creates a new task instance from the given definition. The
// initiator is seeded into the resolved assignments; the input is validated
// against the definition's schema before anything is persisted.
func (c *Client) CreateTask(ctx context.Context, def *task.Definition, initiator core.UserReference, options CreateTaskOptions) (*core.TaskInstance, error) {
	if err := c.validate.Struct(def); err != nil {
		return nil, fmt.Errorf("validating task definition: %w", err)
	}

	var input payload.Payload
	if options.Input != nil {
		var err error
		input, err = c.backend.Converter().To(options.Input)
		if err != nil {
			return nil, fmt.Errorf("converting task input: %w", err)
		}
	}

	if len(def.InputSchema) > 0 {
		if err := validateInput(def.ID, def.InputSchema, input); err != nil {
			return nil, err
		}
	}

	rc, err := runtimeContext(input, options.Context)
	if err != nil {
		return nil, err
	}

	adef := def.Assignments
	if options.Assignments != nil {
		adef = options.Assignments
	}

	key, err := c.resolveKey(def, adef, rc, options.Key)
	if err != nil {
		return nil, err
	}

	instance := core.NewTaskInstance(def.ID, key)

	ctx, span := c.backend.Tracer().Start(ctx, fmt.Sprintf("CreateTask: %s", def.ID), trace.WithAttributes(
		attribute.String(log.InstanceIDKey, instance.InstanceID()),
		attribute.String(log.DefinitionIDKey, def.ID),
		attribute.String(log.UserIDKey, initiator.ID),
	))
	defer span.End()

	resolveStart := c.clock.Now()

	assignments, err := c.resolver.Resolve(ctx, adef, rc, initiator)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("resolving people assignments: %w", err)
	}

	c.backend.Metrics().Counter(metrickeys.AssignmentResolved, metrics.Tags{metrickeys.Definition: def.ID}, 1)
	c.backend.Metrics().Timing(metrickeys.AssignmentDuration, metrics.Tags{metrickeys.Definition: def.ID}, c.clock.Since(resolveStart))

	priority := def.Priority
	if options.Priority != nil {
		priority = *options.Priority
	}

	t, err := task.Create(c.clock, instance, &history.TaskCreatedAttributes{
		Name:             def.Name,
		Priority:         priority,
		Skippable:        def.Skippable,
		CompletionPolicy: def.CompletionPolicy,
		Titles:           def.Titles,
		Subjects:         def.Subjects,
		Descriptions:     def.Descriptions,
		Input:            input,
		Assignments:      assignments,
		Subtasks:         def.Subtasks,
	})
	if err != nil {
		return nil, err
	}

	if err := c.backend.CreateTaskInstance(ctx, instance, t.Changes()); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("creating task instance: %w", err)
	}

	c.backend.Options().Logger.Debug(
		"Created task instance",
		log.InstanceIDKey, instance.InstanceID(),
		log.DefinitionIDKey, def.ID,
		log.TaskKeyKey, instance.Key,
	)

	c.backend.Metrics().Counter(metrickeys.TaskCreated, metrics.Tags{metrickeys.Definition: def.ID}, 1)

	return instance, nil
}

// GetTask loads a task instance by replaying its history.
func (c *Client) GetTask(ctx context.Context, instance *core.TaskInstance) (*task.HumanTask, error) {
	ctx, span := c.backend.Tracer().Start(ctx, "GetTask", trace.WithAttributes(
		attribute.String(log.InstanceIDKey, instance.InstanceID()),
	))
	defer span.End()

	events, err := c.backend.GetTaskHistory(ctx, instance, nil)
	if err != nil {
		return nil, err
	}

	t, err := task.FromHistory(events, c.clock)
	if err != nil {
		return nil, fmt.Errorf("rebuilding task state: %w", err)
	}

	t.Instance = instance

	return t, nil
}

// RemoveTask removes a finished task instance and its history from the
// backend. The requesting user must be a business administrator of the
// task; the deleted event is appended to the history before the instance
// is removed. Returns backend.ErrTaskNotFinished while the task is still
// active.
func (c *Client) RemoveTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference) error {
	ctx, span := c.backend.Tracer().Start(ctx, "RemoveTask", trace.WithAttributes(
		attribute.String(log.InstanceIDKey, instance.InstanceID()),
	))
	defer span.End()

	t, err := c.GetTask(ctx, instance)
	if err != nil {
		return err
	}

	if !t.Status().Final() {
		return backend.ErrTaskNotFinished
	}

	if err := t.Delete(user); err != nil {
		span.RecordError(err)
		return err
	}

	// The deleted event reaches the stream before the stream itself is
	// removed, so consumers tailing the history observe the removal signal.
	if err := c.backend.AppendEvents(ctx, instance, t.Status(), t.Changes()); err != nil {
		span.RecordError(err)
		return err
	}

	t.ClearChanges()

	if err := c.backend.RemoveTaskInstance(ctx, instance); err != nil {
		span.RecordError(err)
		return err
	}

	c.backend.Options().Logger.Debug(
		"Removed task instance",
		log.InstanceIDKey, instance.InstanceID(),
		log.UserIDKey, user.ID,
	)
	c.backend.Metrics().Counter(metrickeys.TaskRemoved, metrics.Tags{metrickeys.Definition: instance.DefinitionID}, 1)

	return nil
}

// GetStats returns task counts from the backend.
func (c *Client) GetStats(ctx context.Context) (*backend.Stats, error) {
	return c.backend.GetStats(ctx)
}

func (c *Client) resolveKey(def *task.Definition, adef *assignment.PeopleAssignmentsDefinition, rc *assignment.RuntimeContext, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if def.KeyExpression != "" {
		language := expression.PathLanguage
		if adef != nil && adef.ExpressionLanguage != "" {
			language = adef.ExpressionLanguage
		}

		evaluator, err := c.registry.Evaluator(language)
		if err != nil {
			return "", fmt.Errorf("resolving task key: %w", err)
		}

		key, err := expression.EvaluateAs[string](evaluator, def.KeyExpression, rc.Input, rc.Context)
		if err != nil {
			return "", fmt.Errorf("resolving task key: %w", err)
		}

		if key == "" {
			return "", fmt.Errorf("resolving task key: expression %q evaluated to empty", def.KeyExpression)
		}

		return key, nil
	}

	return uuid.NewString()[:8], nil
}

func runtimeContext(input payload.Payload, context map[string]any) (*assignment.RuntimeContext, error) {
	rc := &assignment.RuntimeContext{
		Context: context,
	}

	if len(input) > 0 {
		if err := json.Unmarshal(input, &rc.Input); err != nil {
			return nil, fmt.Errorf("decoding task input: %w", err)
		}
	}

	return rc, nil
}
