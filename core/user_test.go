package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_UserReference_Equals(t *testing.T) {
	require.True(t, NewUserReference("alice").Equals(NewUserReference("alice")))
	require.True(t, NewUserReference("Alice").Equals(NewUserReference("alice")))
	require.False(t, NewUserReference("alice").Equals(NewUserReference("bob")))

	// Name is display-only and never part of identity.
	require.True(t, UserReference{ID: "alice", Name: "Alice A."}.Equals(UserReference{ID: "alice", Name: "Someone Else"}))
}

func Test_ContainsUser(t *testing.T) {
	users := []UserReference{
		NewUserReference("alice"),
		NewUserReference("bob"),
	}

	require.True(t, ContainsUser(users, NewUserReference("BOB")))
	require.False(t, ContainsUser(users, NewUserReference("carol")))
	require.False(t, ContainsUser(nil, NewUserReference("alice")))
}

func Test_TaskStatus_Final(t *testing.T) {
	require.False(t, TaskStatusReady.Final())
	require.False(t, TaskStatusReserved.Final())
	require.False(t, TaskStatusInProgress.Final())
	require.False(t, TaskStatusSuspended.Final())

	require.True(t, TaskStatusCompleted.Final())
	require.True(t, TaskStatusCancelled.Final())
	require.True(t, TaskStatusFaulted.Final())
	require.True(t, TaskStatusObsolete.Final())
}
