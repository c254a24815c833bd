package client

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"humantask/backend/metrics"
	"humantask/core"
	"humantask/internal/log"
	"humantask/internal/metrickeys"
	"humantask/internal/taskerrors"
	"humantask/task"
)

// ClaimTask claims a ready task for the given user.
func (c *Client) ClaimTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference) error {
	return c.execute(ctx, instance, "Claim", func(t *task.HumanTask) error {
		return t.Claim(user)
	})
}

// ReleaseTask returns a claimed task to the ready state.
func (c *Client) ReleaseTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference) error {
	return c.execute(ctx, instance, "Release", func(t *task.HumanTask) error {
		return t.Release(user)
	})
}

// DelegateTask assigns the task to another user, adding them as a
// potential owner if necessary.
func (c *Client) DelegateTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, to core.UserReference) error {
	return c.execute(ctx, instance, "Delegate", func(t *task.HumanTask) error {
		return t.Delegate(user, to)
	})
}

// ForwardTask hands the task to a different set of potential owners.
func (c *Client) ForwardTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, to []core.UserReference) error {
	return c.execute(ctx, instance, "Forward", func(t *task.HumanTask) error {
		return t.Forward(user, to)
	})
}

// StartTask moves a reserved task into progress.
func (c *Client) StartTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference) error {
	return c.execute(ctx, instance, "Start", func(t *task.HumanTask) error {
		return t.Start(user)
	})
}

// SuspendTask suspends an active task.
func (c *Client) SuspendTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, reason string) error {
	return c.execute(ctx, instance, "Suspend", func(t *task.HumanTask) error {
		return t.Suspend(user, reason)
	})
}

// ResumeTask resumes a suspended task into its pre-suspension state.
func (c *Client) ResumeTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference) error {
	return c.execute(ctx, instance, "Resume", func(t *task.HumanTask) error {
		return t.Resume(user)
	})
}

// SkipTask skips a skippable task.
func (c *Client) SkipTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, reason string) error {
	return c.execute(ctx, instance, "Skip", func(t *task.HumanTask) error {
		return t.Skip(user, reason)
	})
}

// CancelTask cancels an active task.
func (c *Client) CancelTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, reason string) error {
	return c.execute(ctx, instance, "Cancel", func(t *task.HumanTask) error {
		return t.Cancel(user, reason)
	})
}

// CompleteTask completes the task with the given outcome and output. When
// a definition is given, the recorded completion behavior is the first of
// its behaviors matching the outcome.
func (c *Client) CompleteTask(ctx context.Context, instance *core.TaskInstance, def *task.Definition, user core.UserReference, outcome string, output any) error {
	var behavior string
	if def != nil {
		behavior = def.MatchCompletionBehavior(outcome)
	}

	return c.execute(ctx, instance, "Complete", func(t *task.HumanTask) error {
		converted, err := c.backend.Converter().To(output)
		if err != nil {
			return fmt.Errorf("converting task output: %w", err)
		}

		return t.Complete(user, outcome, converted, behavior)
	})
}

// FaultTask moves the task into the faulted state with the given faults.
func (c *Client) FaultTask(ctx context.Context, instance *core.TaskInstance, user core.UserReference, faults []core.Fault) error {
	return c.execute(ctx, instance, "Fault", func(t *task.HumanTask) error {
		return t.Fault(user, faults)
	})
}

// AddFault attaches a fault to an active task.
func (c *Client) AddFault(ctx context.Context, instance *core.TaskInstance, user core.UserReference, fault core.Fault) error {
	return c.execute(ctx, instance, "AddFault", func(t *task.HumanTask) error {
		return t.AddFault(user, fault)
	})
}

// RemoveFault removes a fault by id. Returns false without error when no
// fault with the id exists.
func (c *Client) RemoveFault(ctx context.Context, instance *core.TaskInstance, user core.UserReference, faultID string) (bool, error) {
	var removed bool

	err := c.execute(ctx, instance, "RemoveFault", func(t *task.HumanTask) error {
		var err error
		removed, err = t.RemoveFault(user, faultID)
		return err
	})

	return removed, err
}

// AddAttachment attaches a document to the task.
func (c *Client) AddAttachment(ctx context.Context, instance *core.TaskInstance, user core.UserReference, attachment core.Attachment) error {
	return c.execute(ctx, instance, "AddAttachment", func(t *task.HumanTask) error {
		return t.AddAttachment(user, attachment)
	})
}

// RemoveAttachment removes an attachment by id. Returns false without
// error when no attachment with the id exists.
func (c *Client) RemoveAttachment(ctx context.Context, instance *core.TaskInstance, user core.UserReference, attachmentID string) (bool, error) {
	var removed bool

	err := c.execute(ctx, instance, "RemoveAttachment", func(t *task.HumanTask) error {
		var err error
		removed, err = t.RemoveAttachment(user, attachmentID)
		return err
	})

	return removed, err
}

// AddComment adds a comment and returns it with its generated id.
func (c *Client) AddComment(ctx context.Context, instance *core.TaskInstance, user core.UserReference, text string) (core.Comment, error) {
	var comment core.Comment

	err := c.execute(ctx, instance, "AddComment", func(t *task.HumanTask) error {
		var err error
		comment, err = t.AddComment(user, text)
		return err
	})

	return comment, err
}

// UpdateComment replaces the text of an existing comment. Returns false
// without error when no comment with the id exists.
func (c *Client) UpdateComment(ctx context.Context, instance *core.TaskInstance, user core.UserReference, commentID, text string) (bool, error) {
	var updated bool

	err := c.execute(ctx, instance, "UpdateComment", func(t *task.HumanTask) error {
		var err error
		updated, err = t.UpdateComment(user, commentID, text)
		return err
	})

	return updated, err
}

// RemoveComment removes a comment by id. Returns false without error when
// no comment with the id exists.
func (c *Client) RemoveComment(ctx context.Context, instance *core.TaskInstance, user core.UserReference, commentID string) (bool, error) {
	var removed bool

	err := c.execute(ctx, instance, "RemoveComment", func(t *task.HumanTask) error {
		var err error
		removed, err = t.RemoveComment(user, commentID)
		return err
	})

	return removed, err
}

// SetTaskPriority changes the task priority. Returns false without error
// when the priority already has the given value.
func (c *Client) SetTaskPriority(ctx context.Context, instance *core.TaskInstance, user core.UserReference, priority int) (bool, error) {
	var changed bool

	err := c.execute(ctx, instance, "SetPriority", func(t *task.HumanTask) error {
		var err error
		changed, err = t.SetPriority(user, priority)
		return err
	})

	return changed, err
}

// execute loads the task, runs the command against the rebuilt aggregate
// and appends the recorded changes. A panic in the command surfaces as a
// *taskerrors.PanicError instead of crashing the caller.
func (c *Client) execute(ctx context.Context, instance *core.TaskInstance, command string, f func(t *task.HumanTask) error) (err error) {
	ctx, span := c.backend.Tracer().Start(ctx, fmt.Sprintf("%s: %s", command, instance.InstanceID()), trace.WithAttributes(
		attribute.String(log.InstanceIDKey, instance.InstanceID()),
		attribute.String(log.CommandKey, command),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = taskerrors.NewPanicError(r)
		}
	}()

	t, err := c.GetTask(ctx, instance)
	if err != nil {
		return err
	}

	if err := f(t); err != nil {
		span.RecordError(err)
		c.backend.Metrics().Counter(metrickeys.CommandRejected, metrics.Tags{metrickeys.Command: command}, 1)
		return err
	}

	changes := t.Changes()
	if len(changes) == 0 {
		// Idempotent no-op, nothing to persist.
		return nil
	}

	if err := c.backend.AppendEvents(ctx, instance, t.Status(), changes); err != nil {
		span.RecordError(err)
		return fmt.Errorf("appending events: %w", err)
	}

	t.ClearChanges()

	c.backend.Options().Logger.Debug(
		"Executed task command",
		log.InstanceIDKey, instance.InstanceID(),
		log.CommandKey, command,
		log.StatusKey, t.Status().String(),
	)

	c.backend.Metrics().Counter(metrickeys.CommandExecuted, metrics.Tags{metrickeys.Command: command}, 1)

	return nil
}
