package directory

import "context"

// StaticDirectory serves a fixed set of identities. Intended for tests and
// for embedding applications that load their user set elsewhere.
type StaticDirectory struct {
	users []ClaimsIdentity
}

var _ UserDirectory = (*StaticDirectory)(nil)

func NewStaticDirectory(users ...ClaimsIdentity) *StaticDirectory {
	return &StaticDirectory{
		users: users,
	}
}

func (sd *StaticDirectory) ListUsers(ctx context.Context) ([]ClaimsIdentity, error) {
	return sd.users, nil
}
