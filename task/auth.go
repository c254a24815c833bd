package task

import (
	"fmt"

	"humantask/core"
)

// guardOrder is the order role flags are tested in. The first matching flag
// authorizes the caller.
var guardOrder = []core.GenericHumanRole{
	core.RoleActualOwner,
	core.RoleInitiator,
	core.RolePotentialInitiator,
	core.RolePotentialOwner,
	core.RoleExcludedOwner,
	core.RoleStakeholder,
	core.RoleBusinessAdministrator,
	core.RoleNotificationRecipient,
}

// DefinesRoleFor reports whether user holds any of the roles in the flag
// set with respect to this task. Flags are tested with OR semantics,
// short-circuiting on the first match. A flag set containing bits outside
// the defined roles is a programming error and panics.
func (h *HumanTask) DefinesRoleFor(roles core.GenericHumanRole, user core.UserReference) bool {
	if unknown := roles &^ core.AllRoles; unknown != 0 {
		panic(fmt.Sprintf("unsupported role flags %b in authorization check", unknown))
	}

	if roles == core.RoleNone || h.assignments == nil {
		return false
	}

	for _, role := range guardOrder {
		if !roles.Has(role) {
			continue
		}

		switch role {
		case core.RoleActualOwner:
			if h.assignments.ActualOwner != nil && h.assignments.ActualOwner.Equals(user) {
				return true
			}
		case core.RoleInitiator:
			if h.assignments.Initiator.Equals(user) {
				return true
			}
		default:
			if core.ContainsUser(h.assignments.UsersInRole(role), user) {
				return true
			}
		}
	}

	return false
}

// checkRole is the role half of a command precondition. The status half is
// evaluated first by each command; both checks are independent.
func (h *HumanTask) checkRole(command string, roles core.GenericHumanRole, user core.UserReference) error {
	if !h.DefinesRoleFor(roles, user) {
		return newRoleViolation(command, user.ID)
	}

	return nil
}
