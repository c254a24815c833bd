package assignment

import (
	"humantask/core"
)

// PeopleAssignmentsDefinition is the declarative assignment template
// attached to a task definition. Role definitions are resolved in a fixed
// order (potential initiators, potential owners, excluded owners,
// stakeholders, business administrators, notification recipients); a
// definition may reference any role resolved before it.
type PeopleAssignmentsDefinition struct {
	// ExpressionLanguage selects the evaluator for runtime expressions in
	// this definition. Empty selects the built-in path language. An
	// unregistered language aborts resolution.
	ExpressionLanguage string `json:"expression_language,omitempty"`

	// LogicalPeopleGroups are resolved, in declaration order, before any
	// role. A group may reference another group only if that group was
	// declared earlier; there is no cycle detection, a forward reference
	// resolves to an empty set.
	LogicalPeopleGroups []LogicalPeopleGroupDefinition `json:"logical_people_groups,omitempty"`

	PotentialInitiators []PeopleReferenceDefinition `json:"potential_initiators,omitempty"`

	PotentialOwners []PeopleReferenceDefinition `json:"potential_owners,omitempty"`

	ExcludedOwners []PeopleReferenceDefinition `json:"excluded_owners,omitempty"`

	Stakeholders []PeopleReferenceDefinition `json:"stakeholders,omitempty"`

	BusinessAdministrators []PeopleReferenceDefinition `json:"business_administrators,omitempty"`

	NotificationRecipients []PeopleReferenceDefinition `json:"notification_recipients,omitempty"`
}

func (d *PeopleAssignmentsDefinition) referencesForRole(role core.GenericHumanRole) []PeopleReferenceDefinition {
	switch role {
	case core.RolePotentialInitiator:
		return d.PotentialInitiators
	case core.RolePotentialOwner:
		return d.PotentialOwners
	case core.RoleExcludedOwner:
		return d.ExcludedOwners
	case core.RoleStakeholder:
		return d.Stakeholders
	case core.RoleBusinessAdministrator:
		return d.BusinessAdministrators
	case core.RoleNotificationRecipient:
		return d.NotificationRecipients
	default:
		return nil
	}
}

// LogicalPeopleGroupDefinition declares a named, reusable set of users.
type LogicalPeopleGroupDefinition struct {
	Name string `json:"name" validate:"required"`

	Members []PeopleReferenceDefinition `json:"members,omitempty"`
}

// PeopleReferenceDefinition is one entry in a role or group definition.
// Exactly one of User, Role, Group, or Filters is expected to be set.
type PeopleReferenceDefinition struct {
	// User is a single user id, literal or runtime expression. An id that
	// is not in the directory contributes nothing.
	User string `json:"user,omitempty"`

	// Role references all users of an already-resolved generic role.
	Role core.GenericHumanRole `json:"role,omitempty"`

	// Group references all users of a logical people group, literal or
	// runtime expression. An unknown group contributes nothing.
	Group string `json:"group,omitempty"`

	// Filters select all directory users matching every filter.
	Filters []ClaimFilterDefinition `json:"filters,omitempty"`
}

// ClaimFilterDefinition is a claim-type/claim-value pattern pair. Each
// pattern may be a runtime expression and is compiled as a regular
// expression after evaluation. An empty type matches any claim type, an
// empty value any claim value; with both empty the filter matches every
// user. A user matches when at least one claim satisfies both patterns
// jointly.
type ClaimFilterDefinition struct {
	Type string `json:"type,omitempty"`

	Value string `json:"value,omitempty"`
}

// RuntimeContext carries the documents expressions are evaluated against.
type RuntimeContext struct {
	// Input is the task input document.
	Input any

	// Context is the contextual object, e.g. process variables.
	Context map[string]any
}
