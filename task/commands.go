package task

import (
	"github.com/google/uuid"

	"humantask/backend/history"
	"humantask/backend/payload"
	"humantask/core"
)

// Every command evaluates its status precondition first, then its role
// precondition. Either failing is a rule violation and records no event.

func (h *HumanTask) checkStatus(command string, statuses ...core.TaskStatus) error {
	if h.deleted {
		return newStatusViolation(command, h.status)
	}

	for _, s := range statuses {
		if h.status == s {
			return nil
		}
	}

	return newStatusViolation(command, h.status)
}

// checkActive rejects commands on terminal or deleted tasks.
func (h *HumanTask) checkActive(command string) error {
	if h.deleted || h.status.Final() {
		return newStatusViolation(command, h.status)
	}

	return nil
}

// Claim reserves the task for user.
func (h *HumanTask) Claim(user core.UserReference) error {
	if err := h.checkStatus("Claim", core.TaskStatusReady); err != nil {
		return err
	}

	if err := h.checkRole("Claim", core.RolePotentialOwner, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskClaimed, &history.TaskClaimedAttributes{
		Owner: user,
	}))
}

// Release gives up or revokes ownership and returns the task to Ready.
func (h *HumanTask) Release(user core.UserReference) error {
	if err := h.checkStatus("Release", core.TaskStatusReserved, core.TaskStatusInProgress); err != nil {
		return err
	}

	if err := h.checkRole("Release", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	if h.assignments.ActualOwner == nil {
		return newArgViolation("Release", "actualOwner", "task has no actual owner")
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskReleased, &history.TaskReleasedAttributes{
		ReleasedBy: user,
	}))
}

// Delegate assigns the task to another user. A claimed or started task is
// released first; the delegate event itself does not change the status.
func (h *HumanTask) Delegate(user core.UserReference, to core.UserReference) error {
	if err := h.checkStatus("Delegate", core.TaskStatusReady, core.TaskStatusReserved, core.TaskStatusInProgress); err != nil {
		return err
	}

	if err := h.checkRole("Delegate", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	if to.ID == "" {
		return newArgViolation("Delegate", "to", "must not be empty")
	}

	if h.status == core.TaskStatusReserved || h.status == core.TaskStatusInProgress {
		if err := h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskReleased, &history.TaskReleasedAttributes{
			ReleasedBy: user,
		})); err != nil {
			return err
		}
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskDelegated, &history.TaskDelegatedAttributes{
		DelegatedBy: user,
		Delegatee:   to,
	}))
}

// Forward removes the forwarder from the potential owners and offers the
// task to the given recipients. A claimed or started task is released
// first.
func (h *HumanTask) Forward(user core.UserReference, to []core.UserReference) error {
	switch h.status {
	case core.TaskStatusReserved, core.TaskStatusInProgress:
		if h.deleted {
			return newStatusViolation("Forward", h.status)
		}

		if err := h.checkRole("Forward", core.RoleActualOwner|core.RoleBusinessAdministrator|core.RoleStakeholder, user); err != nil {
			return err
		}
	case core.TaskStatusReady:
		// A potential owner may forward an unclaimed task.
		if h.deleted || !h.DefinesRoleFor(core.RolePotentialOwner, user) {
			return newStatusViolation("Forward", h.status)
		}
	default:
		return newStatusViolation("Forward", h.status)
	}

	if len(to) == 0 {
		return newArgViolation("Forward", "to", "must not be empty")
	}

	if h.status == core.TaskStatusReserved || h.status == core.TaskStatusInProgress {
		if err := h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskReleased, &history.TaskReleasedAttributes{
			ReleasedBy: user,
		})); err != nil {
			return err
		}
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskForwarded, &history.TaskForwardedAttributes{
		ForwardedBy: user,
		Recipients:  to,
	}))
}

// Start begins work on a claimed task.
func (h *HumanTask) Start(user core.UserReference) error {
	if err := h.checkStatus("Start", core.TaskStatusReserved); err != nil {
		return err
	}

	if err := h.checkRole("Start", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskStarted, &history.TaskStartedAttributes{}))
}

// Suspend pauses an in-progress task.
func (h *HumanTask) Suspend(user core.UserReference, reason string) error {
	if err := h.checkStatus("Suspend", core.TaskStatusInProgress); err != nil {
		return err
	}

	if err := h.checkRole("Suspend", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskSuspended, &history.TaskSuspendedAttributes{
		Reason: reason,
	}))
}

// Resume continues a suspended task.
func (h *HumanTask) Resume(user core.UserReference) error {
	if err := h.checkStatus("Resume", core.TaskStatusSuspended); err != nil {
		return err
	}

	if err := h.checkRole("Resume", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskResumed, &history.TaskResumedAttributes{}))
}

// Skip marks a task the definition declared skippable as Obsolete.
func (h *HumanTask) Skip(user core.UserReference, reason string) error {
	if err := h.checkActive("Skip"); err != nil {
		return err
	}

	if !h.skippable {
		return newArgViolation("Skip", "skippable", "task is not skippable")
	}

	if err := h.checkRole("Skip", core.RolePotentialOwner|core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskSkipped, &history.TaskSkippedAttributes{
		Reason: reason,
	}))
}

// Cancel aborts an active task.
func (h *HumanTask) Cancel(user core.UserReference, reason string) error {
	if err := h.checkActive("Cancel"); err != nil {
		return err
	}

	if err := h.checkRole("Cancel", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskCancelled, &history.TaskCancelledAttributes{
		Reason: reason,
	}))
}

// Complete finishes the task with the given outcome and output. The
// definition's completion policy decides whether a claimed but unstarted
// task may be completed; behavior is the matched completion-behavior name.
func (h *HumanTask) Complete(user core.UserReference, outcome string, output payload.Payload, behavior string) error {
	statuses := []core.TaskStatus{core.TaskStatusInProgress}
	if h.completionPolicy == core.CompleteFromReserved {
		statuses = append(statuses, core.TaskStatusReserved)
	}

	if err := h.checkStatus("Complete", statuses...); err != nil {
		return err
	}

	if err := h.checkRole("Complete", core.RoleActualOwner, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskCompleted, &history.TaskCompletedAttributes{
		Outcome:            outcome,
		Output:             output,
		CompletionBehavior: behavior,
	}))
}

// Fault terminates the task with the given fault list.
func (h *HumanTask) Fault(user core.UserReference, faults []core.Fault) error {
	if err := h.checkActive("Fault"); err != nil {
		return err
	}

	if err := h.checkRole("Fault", core.RoleActualOwner|core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	if len(faults) == 0 {
		return newArgViolation("Fault", "faults", "must not be empty")
	}

	for i := range faults {
		if faults[i].ID == "" {
			faults[i].ID = uuid.NewString()
		}
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskFaulted, &history.TaskFaultedAttributes{
		Faults: faults,
	}))
}

// AddFault appends a fault entry without changing the status.
func (h *HumanTask) AddFault(user core.UserReference, fault core.Fault) error {
	if err := h.checkActive("AddFault"); err != nil {
		return err
	}

	if err := h.checkRole("AddFault", core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	if fault.Name == "" {
		return newArgViolation("AddFault", "name", "must not be empty")
	}

	if fault.ID == "" {
		fault.ID = uuid.NewString()
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_FaultAdded, &history.FaultAddedAttributes{
		Fault: fault,
	}))
}

// RemoveFault removes a fault entry. Removing an unknown fault is an
// idempotent no-op reported as false, not an error.
func (h *HumanTask) RemoveFault(user core.UserReference, faultID string) (bool, error) {
	if err := h.checkActive("RemoveFault"); err != nil {
		return false, err
	}

	if err := h.checkRole("RemoveFault", core.RoleBusinessAdministrator, user); err != nil {
		return false, err
	}

	if !containsFault(h.faults, faultID) {
		return false, nil
	}

	return true, h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_FaultRemoved, &history.FaultRemovedAttributes{
		FaultID: faultID,
	}))
}

// childRole is the role set for attachment and comment operations: task
// participants, or potential owners while the task is still unclaimed.
func (h *HumanTask) checkChildRole(command string, user core.UserReference) error {
	roles := core.RoleActualOwner | core.RoleBusinessAdministrator | core.RoleStakeholder
	if h.status == core.TaskStatusReady {
		roles |= core.RolePotentialOwner
	}

	return h.checkRole(command, roles, user)
}

// AddAttachment attaches content to the task.
func (h *HumanTask) AddAttachment(user core.UserReference, attachment core.Attachment) error {
	if err := h.checkActive("AddAttachment"); err != nil {
		return err
	}

	if err := h.checkChildRole("AddAttachment", user); err != nil {
		return err
	}

	if attachment.Name == "" {
		return newArgViolation("AddAttachment", "name", "must not be empty")
	}

	if attachment.ID == "" {
		attachment.ID = uuid.NewString()
	}

	attachment.AttachedBy = user
	attachment.AttachedAt = h.clock.Now()

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_AttachmentAdded, &history.AttachmentAddedAttributes{
		Attachment: attachment,
	}))
}

// RemoveAttachment removes an attachment; unknown ids are an idempotent
// no-op reported as false.
func (h *HumanTask) RemoveAttachment(user core.UserReference, attachmentID string) (bool, error) {
	if err := h.checkActive("RemoveAttachment"); err != nil {
		return false, err
	}

	if err := h.checkChildRole("RemoveAttachment", user); err != nil {
		return false, err
	}

	if !containsAttachment(h.attachments, attachmentID) {
		return false, nil
	}

	return true, h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_AttachmentRemoved, &history.AttachmentRemovedAttributes{
		AttachmentID: attachmentID,
	}))
}

// AddComment adds a comment and returns it with its generated id.
func (h *HumanTask) AddComment(user core.UserReference, text string) (core.Comment, error) {
	if err := h.checkActive("AddComment"); err != nil {
		return core.Comment{}, err
	}

	if err := h.checkChildRole("AddComment", user); err != nil {
		return core.Comment{}, err
	}

	if text == "" {
		return core.Comment{}, newArgViolation("AddComment", "text", "must not be empty")
	}

	now := h.clock.Now()
	comment := core.Comment{
		ID:             uuid.NewString(),
		Text:           text,
		AddedBy:        user,
		AddedAt:        now,
		LastModifiedBy: user,
		LastModifiedAt: now,
	}

	return comment, h.record(history.NewTaskEvent(now, history.EventType_CommentAdded, &history.CommentAddedAttributes{
		Comment: comment,
	}))
}

// UpdateComment replaces a comment's text; unknown ids are an idempotent
// no-op reported as false.
func (h *HumanTask) UpdateComment(user core.UserReference, commentID, text string) (bool, error) {
	if err := h.checkActive("UpdateComment"); err != nil {
		return false, err
	}

	if err := h.checkChildRole("UpdateComment", user); err != nil {
		return false, err
	}

	if text == "" {
		return false, newArgViolation("UpdateComment", "text", "must not be empty")
	}

	if !containsComment(h.comments, commentID) {
		return false, nil
	}

	return true, h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_CommentUpdated, &history.CommentUpdatedAttributes{
		CommentID:  commentID,
		Text:       text,
		ModifiedBy: user,
		ModifiedAt: h.clock.Now(),
	}))
}

// RemoveComment removes a comment; unknown ids are an idempotent no-op
// reported as false.
func (h *HumanTask) RemoveComment(user core.UserReference, commentID string) (bool, error) {
	if err := h.checkActive("RemoveComment"); err != nil {
		return false, err
	}

	if err := h.checkChildRole("RemoveComment", user); err != nil {
		return false, err
	}

	if !containsComment(h.comments, commentID) {
		return false, nil
	}

	return true, h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_CommentRemoved, &history.CommentRemovedAttributes{
		CommentID: commentID,
	}))
}

// SetPriority changes the task priority. Re-setting the current priority is
// an idempotent no-op reported as false with no event.
func (h *HumanTask) SetPriority(user core.UserReference, priority int) (bool, error) {
	if err := h.checkActive("SetPriority"); err != nil {
		return false, err
	}

	if err := h.checkChildRole("SetPriority", user); err != nil {
		return false, err
	}

	if priority == h.priority {
		return false, nil
	}

	return true, h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_PriorityChanged, &history.PriorityChangedAttributes{
		Priority: priority,
	}))
}

// Delete records the projection removal signal. The status is unchanged and
// the event history itself is never removed.
func (h *HumanTask) Delete(user core.UserReference) error {
	if h.deleted {
		return newStatusViolation("Delete", h.status)
	}

	if err := h.checkRole("Delete", core.RoleBusinessAdministrator, user); err != nil {
		return err
	}

	return h.record(history.NewTaskEvent(h.clock.Now(), history.EventType_TaskDeleted, &history.TaskDeletedAttributes{}))
}

func containsFault(faults []core.Fault, id string) bool {
	for _, f := range faults {
		if f.ID == id {
			return true
		}
	}

	return false
}

func containsAttachment(attachments []core.Attachment, id string) bool {
	for _, a := range attachments {
		if a.ID == id {
			return true
		}
	}

	return false
}

func containsComment(comments []core.Comment, id string) bool {
	for _, c := range comments {
		if c.ID == id {
			return true
		}
	}

	return false
}
