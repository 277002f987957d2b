package domain

// Session is the authenticated identity and bearer credential held for one
// client. Token and User are always present together; a record with only one
// of the two is treated as no session.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// Authenticated reports whether the session holds a usable identity.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Role returns the session's role, or the empty string when unauthenticated.
func (s *Session) Role() Role {
	if !s.Authenticated() {
		return ""
	}
	return s.User.Role
}
