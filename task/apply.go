package task

import (
	"fmt"

	"humantask/backend/history"
	"humantask/core"
)

// applyEvent mutates the aggregate's fields for one event. It is the only
// place fields change, and runs identically for freshly recorded events and
// for events replayed from storage.
func (h *HumanTask) applyEvent(e *history.Event) error {
	switch a := e.Attributes.(type) {
	case *history.TaskCreatedAttributes:
		h.Instance = core.NewTaskInstance(a.DefinitionID, a.Key)
		h.status = core.TaskStatusCreated
		h.name = a.Name
		h.priority = a.Priority
		h.skippable = a.Skippable
		h.completionPolicy = a.CompletionPolicy
		h.titles = a.Titles
		h.subjects = a.Subjects
		h.descriptions = a.Descriptions
		h.input = a.Input
		h.assignments = a.Assignments
		h.subtasks = append([]core.Subtask(nil), a.Subtasks...)
		h.attachments = append([]core.Attachment(nil), a.Attachments...)
		h.comments = append([]core.Comment(nil), a.Comments...)
		h.createdAt = e.Timestamp

	case *history.TaskActivatedAttributes:
		h.status = core.TaskStatusReady

	case *history.TaskClaimedAttributes:
		owner := a.Owner
		h.assignments.ActualOwner = &owner
		h.status = core.TaskStatusReserved

	case *history.TaskReleasedAttributes:
		h.assignments.ActualOwner = nil
		h.status = core.TaskStatusReady

	case *history.TaskDelegatedAttributes:
		owner := a.Delegatee
		h.assignments.ActualOwner = &owner
		h.assignments.PotentialOwners = append(h.assignments.PotentialOwners, a.Delegatee)

	case *history.TaskForwardedAttributes:
		h.assignments.ActualOwner = nil
		h.assignments.PotentialOwners = removeUser(h.assignments.PotentialOwners, a.ForwardedBy)
		h.assignments.PotentialOwners = append(h.assignments.PotentialOwners, a.Recipients...)

	case *history.TaskStartedAttributes:
		h.status = core.TaskStatusInProgress
		started := e.Timestamp
		h.startedAt = &started

	case *history.TaskSuspendedAttributes:
		h.status = core.TaskStatusSuspended

	case *history.TaskResumedAttributes:
		h.status = core.TaskStatusInProgress

	case *history.TaskCompletedAttributes:
		h.status = core.TaskStatusCompleted
		h.outcome = a.Outcome
		h.output = a.Output
		h.completionBehavior = a.CompletionBehavior
		completed := e.Timestamp
		h.completedAt = &completed

	case *history.TaskCancelledAttributes:
		h.status = core.TaskStatusCancelled

	case *history.TaskSkippedAttributes:
		h.status = core.TaskStatusObsolete

	case *history.TaskFaultedAttributes:
		h.status = core.TaskStatusFaulted
		h.faults = append(h.faults, a.Faults...)

	case *history.PriorityChangedAttributes:
		h.priority = a.Priority

	case *history.FaultAddedAttributes:
		h.faults = append(h.faults, a.Fault)

	case *history.FaultRemovedAttributes:
		h.faults = removeFault(h.faults, a.FaultID)

	case *history.AttachmentAddedAttributes:
		h.attachments = append(h.attachments, a.Attachment)

	case *history.AttachmentRemovedAttributes:
		h.attachments = removeAttachment(h.attachments, a.AttachmentID)

	case *history.CommentAddedAttributes:
		h.comments = append(h.comments, a.Comment)

	case *history.CommentUpdatedAttributes:
		for i := range h.comments {
			if h.comments[i].ID == a.CommentID {
				h.comments[i].Text = a.Text
				h.comments[i].LastModifiedBy = a.ModifiedBy
				h.comments[i].LastModifiedAt = a.ModifiedAt
			}
		}

	case *history.CommentRemovedAttributes:
		h.comments = removeComment(h.comments, a.CommentID)

	case *history.TaskDeletedAttributes:
		h.deleted = true

	default:
		return fmt.Errorf("applying event: unknown attributes type %T", e.Attributes)
	}

	h.lastModified = e.Timestamp

	return nil
}

func removeUser(users []core.UserReference, user core.UserReference) []core.UserReference {
	result := users[:0]
	for _, u := range users {
		if !u.Equals(user) {
			result = append(result, u)
		}
	}

	return result
}

func removeFault(faults []core.Fault, id string) []core.Fault {
	result := faults[:0]
	for _, f := range faults {
		if f.ID != id {
			result = append(result, f)
		}
	}

	return result
}

func removeAttachment(attachments []core.Attachment, id string) []core.Attachment {
	result := attachments[:0]
	for _, a := range attachments {
		if a.ID != id {
			result = append(result, a)
		}
	}

	return result
}

func removeComment(comments []core.Comment, id string) []core.Comment {
	result := comments[:0]
	for _, c := range comments {
		if c.ID != id {
			result = append(result, c)
		}
	}

	return result
}
