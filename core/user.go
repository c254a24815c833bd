package core

import "strings"

// UserReference identifies a user participating in a task. Equality is by
// ID only, case-insensitive; Name is display-only.
type UserReference struct {
	ID string `json:"id,omitempty"`

	Name string `json:"name,omitempty"`
}

func NewUserReference(id string) UserReference {
	return UserReference{ID: id}
}

// Equals reports whether both references identify the same user.
func (u UserReference) Equals(other UserReference) bool {
	return strings.EqualFold(u.ID, other.ID)
}

// ContainsUser reports whether users contains a reference equal to user.
func ContainsUser(users []UserReference, user UserReference) bool {
	for _, u := range users {
		if u.Equals(user) {
			return true
		}
	}

	return false
}
