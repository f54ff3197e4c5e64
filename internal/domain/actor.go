package domain

// Actor is the caller identity resolved per request.
type Actor struct {
	UserID   int64
	ClientID *int64 // nil when the user has no client profile
	Role     string
}

// IsAdmin returns true for operators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasClient returns true if the user can book on their own behalf
func (a Actor) HasClient() bool {
	return a.ClientID != nil && *a.ClientID > 0
}

// CanAccess returns true if the actor owns the appointment or is an operator
func (a Actor) CanAccess(appointment *Appointment) bool {
	if a.IsAdmin() {
		return true
	}
	return a.HasClient() && appointment.IsOwnedBy(*a.ClientID)
}
