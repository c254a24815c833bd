package test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"humantask/backend"
	"humantask/backend/history"
	"humantask/core"
)

// BackendTest runs the shared conformance suite against a backend
// implementation. Every backend gets a fresh instance per test case.
func BackendTest(t *testing.T, setup func() backend.Backend, teardown func(b backend.Backend)) {
	tests := []struct {
		name string
		f    func(t *testing.T, ctx context.Context, b backend.Backend)
	}{
		{
			name: "CreateTaskInstance_DoesNotError",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)
			},
		},
		{
			name: "CreateTaskInstance_SameInstanceErrors",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)

				err = b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.ErrorIs(t, err, backend.ErrTaskAlreadyExists)
			},
		},
		{
			name: "GetTaskHistory_NotFound",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				_, err := b.GetTaskHistory(ctx, newInstance(), nil)
				require.ErrorIs(t, err, backend.ErrTaskNotFound)
			},
		},
		{
			name: "GetTaskHistory_ReturnsEventsInOrder",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)

				err = b.AppendEvents(ctx, instance, core.TaskStatusReserved, []*history.Event{
					history.NewTaskEvent(time.Now(), history.EventType_TaskClaimed, &history.TaskClaimedAttributes{
						Owner: core.UserReference{ID: "u1"},
					}),
				})
				require.NoError(t, err)

				events, err := b.GetTaskHistory(ctx, instance, nil)
				require.NoError(t, err)
				require.Len(t, events, 3)

				for i, event := range events {
					require.Equal(t, int64(i+1), event.SequenceID)
				}

				require.Equal(t, history.EventType_TaskCreated, events[0].Type)
				require.Equal(t, history.EventType_TaskActivated, events[1].Type)
				require.Equal(t, history.EventType_TaskClaimed, events[2].Type)

				attr, ok := events[2].Attributes.(*history.TaskClaimedAttributes)
				require.True(t, ok)
				require.Equal(t, "u1", attr.Owner.ID)
			},
		},
		{
			name: "GetTaskHistory_FiltersBySequenceID",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)

				err = b.AppendEvents(ctx, instance, core.TaskStatusInProgress, []*history.Event{
					history.NewTaskEvent(time.Now(), history.EventType_TaskClaimed, &history.TaskClaimedAttributes{
						Owner: core.UserReference{ID: "u1"},
					}),
					history.NewTaskEvent(time.Now(), history.EventType_TaskStarted, &history.TaskStartedAttributes{}),
				})
				require.NoError(t, err)

				lastSequenceID := int64(2)
				events, err := b.GetTaskHistory(ctx, instance, &lastSequenceID)
				require.NoError(t, err)
				require.Len(t, events, 2)
				require.Equal(t, int64(3), events[0].SequenceID)
				require.Equal(t, history.EventType_TaskClaimed, events[0].Type)
			},
		},
		{
			name: "AppendEvents_NotFound",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				err := b.AppendEvents(ctx, newInstance(), core.TaskStatusReserved, []*history.Event{
					history.NewTaskEvent(time.Now(), history.EventType_TaskClaimed, &history.TaskClaimedAttributes{
						Owner: core.UserReference{ID: "u1"},
					}),
				})
				require.ErrorIs(t, err, backend.ErrTaskNotFound)
			},
		},
		{
			name: "RemoveTaskInstance_NotFinished",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)

				err = b.RemoveTaskInstance(ctx, instance)
				require.ErrorIs(t, err, backend.ErrTaskNotFinished)
			},
		},
		{
			name: "RemoveTaskInstance_RemovesHistory",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				instance := newInstance()

				err := b.CreateTaskInstance(ctx, instance, creationEvents(instance))
				require.NoError(t, err)

				err = b.AppendEvents(ctx, instance, core.TaskStatusObsolete, []*history.Event{
					history.NewTaskEvent(time.Now(), history.EventType_TaskSkipped, &history.TaskSkippedAttributes{}),
				})
				require.NoError(t, err)

				err = b.RemoveTaskInstance(ctx, instance)
				require.NoError(t, err)

				_, err = b.GetTaskHistory(ctx, instance, nil)
				require.ErrorIs(t, err, backend.ErrTaskNotFound)
			},
		},
		{
			name: "RemoveTaskInstance_NotFound",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				err := b.RemoveTaskInstance(ctx, newInstance())
				require.ErrorIs(t, err, backend.ErrTaskNotFound)
			},
		},
		{
			name: "GetStats_CountsActiveTasks",
			f: func(t *testing.T, ctx context.Context, b backend.Backend) {
				active := newInstance()
				require.NoError(t, b.CreateTaskInstance(ctx, active, creationEvents(active)))

				finished := newInstance()
				require.NoError(t, b.CreateTaskInstance(ctx, finished, creationEvents(finished)))
				require.NoError(t, b.AppendEvents(ctx, finished, core.TaskStatusCompleted, []*history.Event{
					history.NewTaskEvent(time.Now(), history.EventType_TaskCompleted, &history.TaskCompletedAttributes{}),
				}))

				stats, err := b.GetStats(ctx)
				require.NoError(t, err)
				require.GreaterOrEqual(t, stats.ActiveTasks, int64(1))
				require.GreaterOrEqual(t, stats.TasksByStatus[core.TaskStatusCompleted.String()], int64(1))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup()
			ctx := context.Background()

			t.Cleanup(func() {
				if teardown != nil {
					teardown(b)
				}
			})

			tt.f(t, ctx, b)
		})
	}
}

func newInstance() *core.TaskInstance {
	return &core.TaskInstance{
		DefinitionID: "approve-invoice",
		Key:          uuid.NewString(),
	}
}

func creationEvents(instance *core.TaskInstance) []*history.Event {
	return []*history.Event{
		history.NewTaskEvent(time.Now(), history.EventType_TaskCreated, &history.TaskCreatedAttributes{
			DefinitionID: instance.DefinitionID,
			Key:          instance.Key,
			Name:         "Approve invoice",
			Priority:     5,
		}),
		history.NewTaskEvent(time.Now(), history.EventType_TaskActivated, &history.TaskActivatedAttributes{}),
	}
}
