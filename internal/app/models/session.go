package models

// Session is the authenticated requester threaded through every core call.
type Session struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s *Session) IsMedico() bool {
	return s.Role == RoleMedico
}

// CanAccess is the ownership predicate: the owning doctor or an admin.
func (s *Session) CanAccess(consultation *Consultation) bool {
	return s.UserID == consultation.MedicoID || s.IsAdmin()
}
