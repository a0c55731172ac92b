package session

import (
	"eventsctl/internal/authz"
)

// Session is the client's current authentication and authorization state.
//
// Invariant: Token and Username are both present or both absent, never one
// without the other. Role is advisory until refreshed against the backend;
// access decisions must use a freshly resolved role, not this cached value.
type Session struct {
	Token    string     `json:"token"`
	Username string     `json:"username"`
	Role     authz.Role `json:"role"`
}

// Authenticated reports whether the session carries credentials
func (s Session) Authenticated() bool {
	return s.Token != "" && s.Username != ""
}

// normalize enforces the pairing invariant: a session missing either
// credential collapses to the empty session, and an unknown cached role
// collapses to the default.
func (s Session) normalize() Session {
	if !s.Authenticated() {
		return Session{}
	}
	if !s.Role.Valid() {
		s.Role = authz.DefaultRole
	}
	return s
}

// WithRole returns a copy of the session carrying a refreshed role
func (s Session) WithRole(role authz.Role) Session {
	s.Role = role
	return s
}
