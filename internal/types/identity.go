package types

import "github.com/google/uuid"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Identity is the caller as seen by handlers: the verified subject linked
// to its local user record.
type Identity struct {
	UserID    uuid.UUID
	SubjectID string
	Email     string
	Name      string
	Role      string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func (i *Identity) HasRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

func (i *Identity) IsOwner(authorID uuid.UUID) bool {
	return i != nil && i.UserID == authorID
}

func (i *Identity) IsOwnerOrAdmin(authorID uuid.UUID) bool {
	return i.IsAdmin() || i.IsOwner(authorID)
}
