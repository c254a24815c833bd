package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"humantask/assignment"
	"humantask/backend"
	"humantask/backend/history"
	"humantask/backend/sqlite"
	"humantask/core"
	"humantask/directory"
	"humantask/task"
)

var (
	initiator = core.NewUserReference("init")
	owner     = core.NewUserReference("alice")
	admin     = core.NewUserReference("frank")
)

func testClient(t *testing.T) (*Client, backend.Backend) {
	t.Helper()

	b := sqlite.NewInMemoryBackend()
	t.Cleanup(func() {
		require.NoError(t, b.Close())
	})

	dir := directory.NewStaticDirectory(
		directory.ClaimsIdentity{
			Subject:     "alice",
			DisplayName: "Alice",
			Claims:      []directory.Claim{{Type: "role", Value: "clerk"}},
		},
		directory.ClaimsIdentity{
			Subject: "bob",
			Claims:  []directory.Claim{{Type: "role", Value: "clerk"}},
		},
		directory.ClaimsIdentity{
			Subject: "frank",
			Claims:  []directory.Claim{{Type: "role", Value: "admin"}},
		},
	)

	return New(b, dir), b
}

func testDefinition() *task.Definition {
	return &task.Definition{
		ID:        "approve-invoice",
		Name:      "Approve invoice",
		Priority:  3,
		Skippable: true,
		Assignments: &assignment.PeopleAssignmentsDefinition{
			PotentialOwners: []assignment.PeopleReferenceDefinition{
				{Filters: []assignment.ClaimFilterDefinition{{Type: "role", Value: "clerk"}}},
			},
			BusinessAdministrators: []assignment.PeopleReferenceDefinition{
				{User: "frank"},
			},
		},
	}
}

func Test_CreateTask(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{
		Key:   "inv-1",
		Input: map[string]any{"amount": 42},
	})
	require.NoError(t, err)
	require.Equal(t, "approve-invoice", instance.DefinitionID)
	require.Equal(t, "inv-1", instance.Key)

	ht, err := c.GetTask(ctx, instance)
	require.NoError(t, err)
	require.Equal(t, core.TaskStatusReady, ht.Status())
	require.Equal(t, "Approve invoice", ht.Name())
	require.Equal(t, initiator.ID, ht.Assignments().Initiator.ID)
	require.Len(t, ht.Assignments().PotentialOwners, 2)
	require.Len(t, ht.Assignments().BusinessAdministrators, 1)
}

func Test_CreateTask_DuplicateKey(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	_, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.ErrorIs(t, err, backend.ErrTaskAlreadyExists)
}

func Test_CreateTask_KeyExpression(t *testing.T) {
	c, _ := testClient(t)

	def := testDefinition()
	def.KeyExpression = "${input.invoice}"

	instance, err := c.CreateTask(context.Background(), def, initiator, CreateTaskOptions{
		Input: map[string]any{"invoice": "inv-77"},
	})
	require.NoError(t, err)
	require.Equal(t, "inv-77", instance.Key)
}

func Test_CreateTask_GeneratedKey(t *testing.T) {
	c, _ := testClient(t)

	instance, err := c.CreateTask(context.Background(), testDefinition(), initiator, CreateTaskOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, instance.Key)
}

func Test_CreateTask_PriorityOverride(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	priority := 9
	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{
		Key:      "inv-1",
		Priority: &priority,
	})
	require.NoError(t, err)

	ht, err := c.GetTask(ctx, instance)
	require.NoError(t, err)
	require.Equal(t, 9, ht.Priority())
}

func Test_CreateTask_RequiresDefinitionID(t *testing.T) {
	c, _ := testClient(t)

	def := testDefinition()
	def.ID = ""

	_, err := c.CreateTask(context.Background(), def, initiator, CreateTaskOptions{})
	require.Error(t, err)
}

func Test_CreateTask_InputSchema(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	def := testDefinition()
	def.InputSchema = []byte(`{
		"type": "object",
		"properties": {"amount": {"type": "number"}},
		"required": ["amount"]
	}`)

	_, err := c.CreateTask(ctx, def, initiator, CreateTaskOptions{
		Key:   "inv-1",
		Input: map[string]any{"amount": 42},
	})
	require.NoError(t, err)

	_, err = c.CreateTask(ctx, def, initiator, CreateTaskOptions{
		Key:   "inv-2",
		Input: map[string]any{"amount": "a lot"},
	})
	require.Error(t, err)
}

func Test_CreateTask_AssignmentsOverride(t *testing.T) {
	c, _ := testClient(t)

	instance, err := c.CreateTask(context.Background(), testDefinition(), initiator, CreateTaskOptions{
		Key: "inv-1",
		Assignments: &assignment.PeopleAssignmentsDefinition{
			PotentialOwners: []assignment.PeopleReferenceDefinition{
				{User: "bob"},
			},
		},
	})
	require.NoError(t, err)

	ht, err := c.GetTask(context.Background(), instance)
	require.NoError(t, err)

	// The override replaces the template's assignments wholesale.
	require.Equal(t, []core.UserReference{{ID: "bob"}}, ht.Assignments().PotentialOwners)
	require.Empty(t, ht.Assignments().BusinessAdministrators)
}

func Test_TaskFlow_EndToEnd(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	def := testDefinition()
	def.CompletionBehaviors = []task.CompletionBehavior{
		{Name: "notify-requester", Outcome: "approved"},
	}

	instance, err := c.CreateTask(ctx, def, initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	require.NoError(t, c.ClaimTask(ctx, instance, owner))
	require.NoError(t, c.StartTask(ctx, instance, owner))

	comment, err := c.AddComment(ctx, instance, owner, "numbers check out")
	require.NoError(t, err)
	require.NotEmpty(t, comment.ID)

	require.NoError(t, c.CompleteTask(ctx, instance, def, owner, "approved", map[string]any{"approved": true}))

	ht, err := c.GetTask(ctx, instance)
	require.NoError(t, err)
	require.Equal(t, core.TaskStatusCompleted, ht.Status())
	require.Equal(t, "approved", ht.Outcome())
	require.Equal(t, "notify-requester", ht.CompletionBehavior())
	require.Len(t, ht.Comments(), 1)
}

func Test_CommandRejection_PersistsNothing(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	var rv *task.RuleViolationError
	require.ErrorAs(t, c.ClaimTask(ctx, instance, core.NewUserReference("stranger")), &rv)

	ht, err := c.GetTask(ctx, instance)
	require.NoError(t, err)
	require.Equal(t, core.TaskStatusReady, ht.Status())
}

func Test_SetTaskPriority_Idempotent(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	changed, err := c.SetTaskPriority(ctx, instance, owner, 3)
	require.NoError(t, err)
	require.False(t, changed)

	changed, err = c.SetTaskPriority(ctx, instance, owner, 9)
	require.NoError(t, err)
	require.True(t, changed)
}

func Test_RemoveTask(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	// Active tasks cannot be removed.
	require.ErrorIs(t, c.RemoveTask(ctx, instance, admin), backend.ErrTaskNotFinished)

	require.NoError(t, c.SkipTask(ctx, instance, admin, "obsolete"))
	require.NoError(t, c.RemoveTask(ctx, instance, admin))

	_, err = c.GetTask(ctx, instance)
	require.ErrorIs(t, err, backend.ErrTaskNotFound)
}

func Test_RemoveTask_RequiresAdministrator(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	require.NoError(t, c.SkipTask(ctx, instance, admin, "obsolete"))

	var rv *task.RuleViolationError
	require.ErrorAs(t, c.RemoveTask(ctx, instance, owner), &rv)
}

// recordingBackend captures appended events so tests can observe writes to
// a history that is removed again within the same operation.
type recordingBackend struct {
	backend.Backend
	appended []*history.Event
}

func (b *recordingBackend) AppendEvents(ctx context.Context, instance *core.TaskInstance, status core.TaskStatus, events []*history.Event) error {
	b.appended = append(b.appended, events...)
	return b.Backend.AppendEvents(ctx, instance, status, events)
}

func Test_RemoveTask_PersistsDeletedEvent(t *testing.T) {
	rb := &recordingBackend{Backend: sqlite.NewInMemoryBackend()}
	t.Cleanup(func() {
		require.NoError(t, rb.Close())
	})

	dir := directory.NewStaticDirectory(directory.ClaimsIdentity{
		Subject: "frank",
		Claims:  []directory.Claim{{Type: "role", Value: "admin"}},
	})

	c := New(rb, dir)
	ctx := context.Background()

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	// A refused removal of an active task writes nothing.
	require.ErrorIs(t, c.RemoveTask(ctx, instance, admin), backend.ErrTaskNotFinished)
	require.Empty(t, rb.appended)

	require.NoError(t, c.SkipTask(ctx, instance, admin, "obsolete"))
	require.NoError(t, c.RemoveTask(ctx, instance, admin))

	// The deleted event was appended to the history before removal.
	last := rb.appended[len(rb.appended)-1]
	require.Equal(t, history.EventType_TaskDeleted, last.Type)
}

func Test_GetStats(t *testing.T) {
	c, _ := testClient(t)
	ctx := context.Background()

	_, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-1"})
	require.NoError(t, err)

	instance, err := c.CreateTask(ctx, testDefinition(), initiator, CreateTaskOptions{Key: "inv-2"})
	require.NoError(t, err)
	require.NoError(t, c.CancelTask(ctx, instance, admin, "withdrawn"))

	stats, err := c.GetStats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.ActiveTasks)
	require.Equal(t, int64(1), stats.TasksByStatus[core.TaskStatusCancelled.String()])
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
