package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"humantask/core"
)

func Test_DefinesRoleFor(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.True(t, ht.DefinesRoleFor(core.RoleInitiator, initiator))
	require.True(t, ht.DefinesRoleFor(core.RolePotentialOwner, u1))
	require.True(t, ht.DefinesRoleFor(core.RoleBusinessAdministrator, admin))
	require.False(t, ht.DefinesRoleFor(core.RolePotentialOwner, stranger))

	// OR semantics: one matching flag suffices.
	require.True(t, ht.DefinesRoleFor(core.RoleActualOwner|core.RoleBusinessAdministrator, admin))
	require.False(t, ht.DefinesRoleFor(core.RoleActualOwner|core.RoleNotificationRecipient, u1))

	// The empty set matches nobody.
	require.False(t, ht.DefinesRoleFor(core.RoleNone, admin))
}

func Test_DefinesRoleFor_ActualOwner(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.False(t, ht.DefinesRoleFor(core.RoleActualOwner, u1))

	require.NoError(t, ht.Claim(u1))

	require.True(t, ht.DefinesRoleFor(core.RoleActualOwner, u1))
	require.False(t, ht.DefinesRoleFor(core.RoleActualOwner, u2))
}

func Test_DefinesRoleFor_UnknownFlagPanics(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.Panics(t, func() {
		ht.DefinesRoleFor(core.AllRoles<<1|core.RolePotentialOwner, u1)
	})
}

func Test_DefinesRoleFor_CaseInsensitive(t *testing.T) {
	ht, _ := newTestTask(t, nil)

	require.True(t, ht.DefinesRoleFor(core.RolePotentialOwner, core.NewUserReference("U1")))
}
