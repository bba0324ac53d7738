package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Identity is the authenticated caller as asserted by the auth collaborator.
type Identity struct {
	UserID int
	Role   Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) CanAccess(r Reservation) bool {
	return i.IsAdmin() || r.UserID == i.UserID
}
