package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RoleFlags_AreDistinct(t *testing.T) {
	roles := []GenericHumanRole{
		RolePotentialInitiator,
		RoleInitiator,
		RolePotentialOwner,
		RoleActualOwner,
		RoleExcludedOwner,
		RoleStakeholder,
		RoleBusinessAdministrator,
		RoleNotificationRecipient,
	}

	var seen GenericHumanRole
	for _, r := range roles {
		require.Zero(t, seen&r, "flag %v overlaps", r)
		seen |= r
	}

	require.Equal(t, AllRoles, seen)
}

func Test_Role_Any(t *testing.T) {
	set := RolePotentialOwner | RoleBusinessAdministrator

	require.True(t, set.Any(RolePotentialOwner))
	require.True(t, set.Any(RolePotentialOwner|RoleStakeholder))
	require.False(t, set.Any(RoleStakeholder))
	require.False(t, RoleNone.Any(AllRoles))
}

func Test_Role_Has(t *testing.T) {
	set := RolePotentialOwner | RoleBusinessAdministrator

	require.True(t, set.Has(RolePotentialOwner))
	require.True(t, set.Has(RolePotentialOwner|RoleBusinessAdministrator))
	require.False(t, set.Has(RolePotentialOwner|RoleStakeholder))
}

func Test_Role_String(t *testing.T) {
	require.Equal(t, "None", RoleNone.String())
	require.Equal(t, "PotentialOwner", RolePotentialOwner.String())
	require.Equal(t, "PotentialOwner|ActualOwner", (RolePotentialOwner | RoleActualOwner).String())
}
