package assignment

import (
	"humantask/core"
)

// PeopleAssignments are the concrete, per-role user lists attached to one
// task instance. Role lists preserve resolution/append order and may
// contain duplicates; callers needing set semantics should use Dedupe.
type PeopleAssignments struct {
	PotentialInitiators []core.UserReference `json:"potential_initiators,omitempty"`

	// Initiator is the user that actually created the task. Always set.
	Initiator core.UserReference `json:"initiator,omitempty"`

	PotentialOwners []core.UserReference `json:"potential_owners,omitempty"`

	// ActualOwner is set only while the task is claimed.
	ActualOwner *core.UserReference `json:"actual_owner,omitempty"`

	ExcludedOwners []core.UserReference `json:"excluded_owners,omitempty"`

	Stakeholders []core.UserReference `json:"stakeholders,omitempty"`

	BusinessAdministrators []core.UserReference `json:"business_administrators,omitempty"`

	NotificationRecipients []core.UserReference `json:"notification_recipients,omitempty"`

	// Groups holds the logical people groups resolved alongside the roles.
	// Retained for display and for references by later role definitions.
	Groups map[string][]core.UserReference `json:"groups,omitempty"`
}

// UsersInRole returns the resolved users for a single role flag.
func (pa *PeopleAssignments) UsersInRole(role core.GenericHumanRole) []core.UserReference {
	switch role {
	case core.RolePotentialInitiator:
		return pa.PotentialInitiators
	case core.RoleInitiator:
		return []core.UserReference{pa.Initiator}
	case core.RolePotentialOwner:
		return pa.PotentialOwners
	case core.RoleActualOwner:
		if pa.ActualOwner == nil {
			return nil
		}
		return []core.UserReference{*pa.ActualOwner}
	case core.RoleExcludedOwner:
		return pa.ExcludedOwners
	case core.RoleStakeholder:
		return pa.Stakeholders
	case core.RoleBusinessAdministrator:
		return pa.BusinessAdministrators
	case core.RoleNotificationRecipient:
		return pa.NotificationRecipients
	default:
		return nil
	}
}

func (pa *PeopleAssignments) appendToRole(role core.GenericHumanRole, users []core.UserReference) {
	switch role {
	case core.RolePotentialInitiator:
		pa.PotentialInitiators = append(pa.PotentialInitiators, users...)
	case core.RolePotentialOwner:
		pa.PotentialOwners = append(pa.PotentialOwners, users...)
	case core.RoleExcludedOwner:
		pa.ExcludedOwners = append(pa.ExcludedOwners, users...)
	case core.RoleStakeholder:
		pa.Stakeholders = append(pa.Stakeholders, users...)
	case core.RoleBusinessAdministrator:
		pa.BusinessAdministrators = append(pa.BusinessAdministrators, users...)
	case core.RoleNotificationRecipient:
		pa.NotificationRecipients = append(pa.NotificationRecipients, users...)
	}
}

// Dedupe returns users with duplicate references removed, keeping the first
// occurrence. Resolution itself never deduplicates; this is the documented
// helper for callers that need set semantics.
func Dedupe(users []core.UserReference) []core.UserReference {
	result := make([]core.UserReference, 0, len(users))

	for _, u := range users {
		if !core.ContainsUser(result, u) {
			result = append(result, u)
		}
	}

	return result
}
