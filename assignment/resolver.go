package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"humantask/core"
	"humantask/directory"
	"humantask/expression"
	"humantask/internal/log"
)

// resolutionOrder is the fixed order generic roles are resolved in. A role
// definition may reference any role at an earlier position; later roles are
// not yet resolved and contribute nothing. This is a template authoring
// constraint, not a runtime error.
var resolutionOrder = []core.GenericHumanRole{
	core.RolePotentialInitiator,
	core.RolePotentialOwner,
	core.RoleExcludedOwner,
	core.RoleStakeholder,
	core.RoleBusinessAdministrator,
	core.RoleNotificationRecipient,
}

// Resolver turns a declarative assignment definition into concrete per-role
// user lists. Resolution happens once, at task creation time.
type Resolver struct {
	registry  *expression.Registry
	directory directory.UserDirectory
	logger    *slog.Logger
}

func NewResolver(registry *expression.Registry, dir directory.UserDirectory, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		registry:  registry,
		directory: dir,
		logger:    logger,
	}
}

// resolution is the append-only state threaded through a single Resolve
// call: the role table built so far, the resolved groups, the directory
// snapshot, and the evaluator.
type resolution struct {
	assignments *PeopleAssignments
	users       []directory.ClaimsIdentity
	evaluator   expression.Evaluator
	rc          *RuntimeContext
}

// Resolve computes the assignments for one task instance. The initiator is
// unconditionally seeded as the actual initiator; the template never
// produces it. Missing users, unknown groups, and unmatched filters yield
// empty contributions; an unsupported expression language aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, def *PeopleAssignmentsDefinition, rc *RuntimeContext, initiator core.UserReference) (*PeopleAssignments, error) {
	if def == nil {
		def = &PeopleAssignmentsDefinition{}
	}

	if rc == nil {
		rc = &RuntimeContext{}
	}

	language := def.ExpressionLanguage
	if language == "" {
		language = expression.PathLanguage
	}

	evaluator, err := r.registry.Evaluator(language)
	if err != nil {
		return nil, fmt.Errorf("resolving people assignments: %w", err)
	}

	users, err := r.directory.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing directory users: %w", err)
	}

	res := &resolution{
		assignments: &PeopleAssignments{
			Initiator: initiator,
			Groups:    map[string][]core.UserReference{},
		},
		users:     users,
		evaluator: evaluator,
		rc:        rc,
	}

	for _, group := range def.LogicalPeopleGroups {
		members, err := r.resolveReferences(res, group.Members)
		if err != nil {
			return nil, fmt.Errorf("resolving group %q: %w", group.Name, err)
		}

		res.assignments.Groups[group.Name] = members

		r.logger.Debug("Resolved logical people group",
			log.GroupNameKey, group.Name,
			log.UserCountKey, len(members),
		)
	}

	for _, role := range resolutionOrder {
		resolved, err := r.resolveReferences(res, def.referencesForRole(role))
		if err != nil {
			return nil, fmt.Errorf("resolving role %v: %w", role, err)
		}

		// Append without deduplicating; duplicates across and within
		// role lists are preserved.
		res.assignments.appendToRole(role, resolved)

		r.logger.Debug("Resolved generic role",
			log.RoleKey, role.String(),
			log.UserCountKey, len(resolved),
		)
	}

	return res.assignments, nil
}

func (r *Resolver) resolveReferences(res *resolution, refs []PeopleReferenceDefinition) ([]core.UserReference, error) {
	result := []core.UserReference{}

	for _, ref := range refs {
		users, err := r.resolveReference(res, ref)
		if err != nil {
			return nil, err
		}

		result = append(result, users...)
	}

	return result, nil
}

func (r *Resolver) resolveReference(res *resolution, ref PeopleReferenceDefinition) ([]core.UserReference, error) {
	switch {
	case ref.User != "":
		id, err := r.evalString(res, ref.User)
		if err != nil {
			return nil, err
		}

		for _, identity := range res.users {
			if strings.EqualFold(identity.Subject, id) {
				return []core.UserReference{
					{ID: identity.Subject, Name: identity.DisplayName},
				}, nil
			}
		}

		// A miss is not an error, it contributes nothing.
		return nil, nil

	case ref.Role != core.RoleNone:
		return res.assignments.UsersInRole(ref.Role), nil

	case ref.Group != "":
		name, err := r.evalString(res, ref.Group)
		if err != nil {
			return nil, err
		}

		return res.assignments.Groups[name], nil

	case len(ref.Filters) > 0:
		return r.resolveFilters(res, ref.Filters)

	default:
		return nil, nil
	}
}

func (r *Resolver) resolveFilters(res *resolution, filters []ClaimFilterDefinition) ([]core.UserReference, error) {
	compiled := make([]compiledFilter, len(filters))
	for i, f := range filters {
		cf, err := r.compileFilter(res, f)
		if err != nil {
			return nil, err
		}
		compiled[i] = cf
	}

	matched := []core.UserReference{}
	for _, identity := range res.users {
		if matchesAll(identity, compiled) {
			matched = append(matched, core.UserReference{ID: identity.Subject, Name: identity.DisplayName})
		}
	}

	return matched, nil
}

type compiledFilter struct {
	typePattern  *regexp.Regexp
	valuePattern *regexp.Regexp
}

func (r *Resolver) compileFilter(res *resolution, f ClaimFilterDefinition) (compiledFilter, error) {
	var cf compiledFilter

	if f.Type != "" {
		pattern, err := r.evalString(res, f.Type)
		if err != nil {
			return cf, err
		}

		cf.typePattern, err = regexp.Compile(pattern)
		if err != nil {
			return cf, fmt.Errorf("compiling claim type pattern: %w", err)
		}
	}

	if f.Value != "" {
		pattern, err := r.evalString(res, f.Value)
		if err != nil {
			return cf, err
		}

		cf.valuePattern, err = regexp.Compile(pattern)
		if err != nil {
			return cf, fmt.Errorf("compiling claim value pattern: %w", err)
		}
	}

	return cf, nil
}

// matchesAll requires every filter to match (implicit AND). A single filter
// matches when at least one claim satisfies its type and value patterns
// jointly; a filter with neither pattern matches every user.
func matchesAll(identity directory.ClaimsIdentity, filters []compiledFilter) bool {
	for _, f := range filters {
		if !matchesFilter(identity, f) {
			return false
		}
	}

	return true
}

func matchesFilter(identity directory.ClaimsIdentity, f compiledFilter) bool {
	if f.typePattern == nil && f.valuePattern == nil {
		return true
	}

	for _, claim := range identity.Claims {
		if f.typePattern != nil && !f.typePattern.MatchString(claim.Type) {
			continue
		}

		if f.valuePattern != nil && !f.valuePattern.MatchString(claim.Value) {
			continue
		}

		return true
	}

	return false
}

func (r *Resolver) evalString(res *resolution, s string) (string, error) {
	// Static strings bypass evaluation entirely.
	if !expression.IsRuntimeExpression(s) {
		return s, nil
	}

	v, err := expression.EvaluateAs[string](res.evaluator, s, res.rc.Input, res.rc.Context)
	if err != nil {
		return "", fmt.Errorf("evaluating expression %q: %w", s, err)
	}

	return v, nil
}
