package history

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"humantask/assignment"
	"humantask/backend/payload"
	"humantask/core"
)

func Test_RoundtripJSON(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	events := []*Event{
		NewTaskEvent(now, EventType_TaskCreated, &TaskCreatedAttributes{
			DefinitionID: "approve-invoice",
			Key:          "inv-42",
			Name:         "Approve invoice",
			Priority:     3,
			Skippable:    true,
			Titles:       map[string]string{"en": "Approve invoice"},
			Input:        payload.Payload(`{"amount":42}`),
			Assignments: &assignment.PeopleAssignments{
				Initiator:       core.NewUserReference("init"),
				PotentialOwners: []core.UserReference{core.NewUserReference("u1"), core.NewUserReference("u2")},
			},
		}),
		NewTaskEvent(now, EventType_TaskActivated, &TaskActivatedAttributes{}),
		NewTaskEvent(now, EventType_TaskClaimed, &TaskClaimedAttributes{
			Owner: core.NewUserReference("u1"),
		}),
		NewTaskEvent(now, EventType_TaskForwarded, &TaskForwardedAttributes{
			ForwardedBy: core.NewUserReference("u1"),
			Recipients:  []core.UserReference{core.NewUserReference("u3")},
		}),
		NewTaskEvent(now, EventType_TaskSuspended, &TaskSuspendedAttributes{
			Reason: "waiting for paperwork",
		}),
		NewTaskEvent(now, EventType_TaskCompleted, &TaskCompletedAttributes{
			Outcome:            "approved",
			Output:             payload.Payload(`{"approved":true}`),
			CompletionBehavior: "notify-requester",
		}),
		NewTaskEvent(now, EventType_TaskFaulted, &TaskFaultedAttributes{
			Faults: []core.Fault{{ID: "f1", Name: "validation", Data: payload.Payload(`"bad"`)}},
		}),
		NewTaskEvent(now, EventType_PriorityChanged, &PriorityChangedAttributes{
			Priority: 7,
		}),
		NewTaskEvent(now, EventType_CommentAdded, &CommentAddedAttributes{
			Comment: core.Comment{ID: "c1", Text: "looks fine", AddedBy: core.NewUserReference("u1"), AddedAt: now},
		}),
	}

	for _, event := range events {
		t.Run(event.Type.String(), func(t *testing.T) {
			data, err := json.Marshal(event)
			require.NoError(t, err)

			var restored *Event
			require.NoError(t, json.Unmarshal(data, &restored))

			require.Equal(t, event, restored)
		})
	}
}

func Test_DeserializeAttributes_UnknownType(t *testing.T) {
	_, err := DeserializeAttributes(EventType(255), []byte(`{}`))
	require.Error(t, err)
}

func Test_DeserializeAttributes_EveryType(t *testing.T) {
	for et := EventType_TaskCreated; et <= EventType_CommentRemoved; et++ {
		attr, err := DeserializeAttributes(et, []byte(`{}`))
		require.NoError(t, err, "event type %v", et)
		require.NotNil(t, attr)
	}
}
