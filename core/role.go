package core

import "strings"

// GenericHumanRole is a bit-flag set of the roles a user may hold with
// respect to one task. Flags combine with bitwise OR; authorization always
// tests whether a user holds any of the flags in a set, never all.
type GenericHumanRole uint

const (
	RoleNone GenericHumanRole = 0

	RolePotentialInitiator GenericHumanRole = 1 << iota
	RoleInitiator
	RolePotentialOwner
	RoleActualOwner
	RoleExcludedOwner
	RoleStakeholder
	RoleBusinessAdministrator
	RoleNotificationRecipient
)

// AllRoles covers every defined flag. Bits outside this mask are invalid.
const AllRoles = RolePotentialInitiator | RoleInitiator | RolePotentialOwner |
	RoleActualOwner | RoleExcludedOwner | RoleStakeholder |
	RoleBusinessAdministrator | RoleNotificationRecipient

// Any reports whether the set shares at least one flag with candidate.
func (r GenericHumanRole) Any(candidate GenericHumanRole) bool {
	return r&candidate != 0
}

// Has reports whether every flag in candidate is set.
func (r GenericHumanRole) Has(candidate GenericHumanRole) bool {
	return r&candidate == candidate
}

func (r GenericHumanRole) String() string {
	if r == RoleNone {
		return "None"
	}

	names := []string{}
	for _, f := range []struct {
		role GenericHumanRole
		name string
	}{
		{RolePotentialInitiator, "PotentialInitiator"},
		{RoleInitiator, "Initiator"},
		{RolePotentialOwner, "PotentialOwner"},
		{RoleActualOwner, "ActualOwner"},
		{RoleExcludedOwner, "ExcludedOwner"},
		{RoleStakeholder, "Stakeholder"},
		{RoleBusinessAdministrator, "BusinessAdministrator"},
		{RoleNotificationRecipient, "NotificationRecipient"},
	} {
		if r.Has(f.role) {
			names = append(names, f.name)
		}
	}

	if len(names) == 0 {
		return "Unknown"
	}

	return strings.Join(names, "|")
}
