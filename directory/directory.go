package directory

import "context"

// Claim is one attribute of an identity.
type Claim struct {
	Type string `json:"type,omitempty"`

	Value string `json:"value,omitempty"`
}

// ClaimsIdentity is a known user: a stable subject identifier plus an
// ordered list of claims describing the user.
type ClaimsIdentity struct {
	// Subject is the stable identifier, compared case-insensitively.
	Subject string `json:"subject,omitempty"`

	// DisplayName is optional and carried into user references.
	DisplayName string `json:"display_name,omitempty"`

	Claims []Claim `json:"claims,omitempty"`
}

// UserDirectory lists the full set of known identities.
type UserDirectory interface {
	ListUsers(ctx context.Context) ([]ClaimsIdentity, error)
}
