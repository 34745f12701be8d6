package identity

import "context"

// Role constants
const (
	RoleSuperAdmin = "superadmin"
	RoleUser       = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleSuperAdmin, RoleUser}

// Principal is the authenticated actor making a request.
type Principal struct {
	UserID string
}

// PermissionRecord is what the identity provider knows about a principal.
type PermissionRecord struct {
	UserID string
	Role   string
}

// Provider looks up permission records from the identity store.
type Provider interface {
	PermissionsFor(ctx context.Context, userID string) (PermissionRecord, error)
}

// IsValidRole reports whether role is one of the known role values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
