package task

import (
	"maps"
	"slices"
	"time"

	"github.com/benbjohnson/clock"

	"humantask/assignment"
	"humantask/backend/history"
	"humantask/backend/payload"
	"humantask/core"
)

// HumanTask is the task aggregate. Command handlers never mutate visible
// state directly: each command records an event, and a single apply step
// mutates the fields. The same apply step runs during replay, so rebuilding
// the aggregate from its recorded history reproduces the exact same state.
type HumanTask struct {
	Instance *core.TaskInstance

	status           core.TaskStatus
	priority         int
	skippable        bool
	completionPolicy core.CompletionPolicy

	name         string
	titles       map[string]string
	subjects     map[string]string
	descriptions map[string]string

	input  payload.Payload
	output payload.Payload

	outcome            string
	completionBehavior string

	assignments *assignment.PeopleAssignments

	subtasks    []core.Subtask
	attachments []core.Attachment
	comments    []core.Comment
	faults      []core.Fault

	createdAt    time.Time
	startedAt    *time.Time
	completedAt  *time.Time
	lastModified time.Time

	deleted bool

	clock   clock.Clock
	changes []*history.Event
}

// Create runs the creation command: it records the created event capturing
// the resolved assignments and content, then atomically records the
// transition into Ready. A task is created exactly once.
func Create(clk clock.Clock, instance *core.TaskInstance, attributes *history.TaskCreatedAttributes) (*HumanTask, error) {
	if clk == nil {
		clk = clock.New()
	}

	if instance == nil || instance.DefinitionID == "" {
		return nil, newArgViolation("Create", "definitionId", "must not be empty")
	}

	if instance.Key == "" {
		return nil, newArgViolation("Create", "key", "must not be empty")
	}

	if attributes.Assignments == nil || attributes.Assignments.Initiator.ID == "" {
		return nil, newArgViolation("Create", "initiator", "must not be empty")
	}

	attributes.DefinitionID = instance.DefinitionID
	attributes.Key = instance.Key

	h := &HumanTask{
		clock: clk,
	}

	if err := h.record(history.NewTaskEvent(clk.Now(), history.EventType_TaskCreated, attributes)); err != nil {
		return nil, err
	}

	if err := h.record(history.NewTaskEvent(clk.Now(), history.EventType_TaskActivated, &history.TaskActivatedAttributes{})); err != nil {
		return nil, err
	}

	return h, nil
}

// FromHistory rebuilds the aggregate by replaying its recorded events.
func FromHistory(events []*history.Event, clk clock.Clock) (*HumanTask, error) {
	if clk == nil {
		clk = clock.New()
	}

	if len(events) == 0 {
		return nil, newArgViolation("Replay", "events", "history must not be empty")
	}

	if events[0].Type != history.EventType_TaskCreated {
		return nil, newArgViolation("Replay", "events", "history must start with the created event")
	}

	h := &HumanTask{
		clock: clk,
	}

	for _, e := range events {
		if err := h.applyEvent(e); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// record appends the event to the pending changes and applies it.
func (h *HumanTask) record(e *history.Event) error {
	if err := h.applyEvent(e); err != nil {
		return err
	}

	h.changes = append(h.changes, e)

	return nil
}

// Changes returns the events recorded since the last ClearChanges.
func (h *HumanTask) Changes() []*history.Event {
	return h.changes
}

func (h *HumanTask) ClearChanges() {
	h.changes = nil
}

func (h *HumanTask) Status() core.TaskStatus {
	return h.status
}

func (h *HumanTask) Priority() int {
	return h.priority
}

func (h *HumanTask) Skippable() bool {
	return h.skippable
}

func (h *HumanTask) Name() string {
	return h.name
}

func (h *HumanTask) Assignments() *assignment.PeopleAssignments {
	return h.assignments
}

func (h *HumanTask) ActualOwner() *core.UserReference {
	if h.assignments == nil {
		return nil
	}

	return h.assignments.ActualOwner
}

func (h *HumanTask) Input() payload.Payload {
	return h.input
}

func (h *HumanTask) Output() payload.Payload {
	return h.output
}

func (h *HumanTask) Outcome() string {
	return h.outcome
}

func (h *HumanTask) CompletionBehavior() string {
	return h.completionBehavior
}

func (h *HumanTask) Subtasks() []core.Subtask {
	return h.subtasks
}

func (h *HumanTask) Attachments() []core.Attachment {
	return h.attachments
}

func (h *HumanTask) Comments() []core.Comment {
	return h.comments
}

func (h *HumanTask) Faults() []core.Fault {
	return h.faults
}

func (h *HumanTask) CreatedAt() time.Time {
	return h.createdAt
}

func (h *HumanTask) StartedAt() *time.Time {
	return h.startedAt
}

func (h *HumanTask) CompletedAt() *time.Time {
	return h.completedAt
}

func (h *HumanTask) LastModified() time.Time {
	return h.lastModified
}

// Deleted reports whether the projection removal signal was recorded.
func (h *HumanTask) Deleted() bool {
	return h.deleted
}

// Title returns the localized title for lang. When the language is missing
// it falls back to the lexicographically first declared language.
func (h *HumanTask) Title(lang string) string {
	return localized(h.titles, lang)
}

func (h *HumanTask) Subject(lang string) string {
	return localized(h.subjects, lang)
}

func (h *HumanTask) Description(lang string) string {
	return localized(h.descriptions, lang)
}

func localized(texts map[string]string, lang string) string {
	if t, ok := texts[lang]; ok {
		return t
	}

	if len(texts) == 0 {
		return ""
	}

	// Fall back to the lexicographically first language, so the result is
	// stable across calls.
	langs := slices.Sorted(maps.Keys(texts))

	return texts[langs[0]]
}
