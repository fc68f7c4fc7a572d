package domain

// Session is the authenticated identity and role context an action runs
// under. It is built once per request from validated token claims and passed
// explicitly to every service call; services never re-derive it.
type Session struct {
	UserID int32    `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
}

// Valid reports whether the session carries a real identity.
func (s *Session) Valid() bool {
	return s != nil && s.UserID > 0
}

func (s *Session) IsAdmin() bool {
	return s.Valid() && s.Role == UserRoleAdmin
}
