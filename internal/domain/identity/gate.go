package identity

import "context"

// Gate decides whether a principal may perform administrative actions.
type Gate struct {
	provider Provider
}

// NewGate creates a Gate backed by the given identity provider.
func NewGate(provider Provider) *Gate {
	return &Gate{provider: provider}
}

// IsAuthorized returns true only when the principal's permission record
// carries the superadmin role. A missing or malformed record, or any
// provider error, is treated as unauthorized — never surfaced as an error.
// INVARIANT: No side effects
func (g *Gate) IsAuthorized(ctx context.Context, p Principal) bool {
	if g == nil || g.provider == nil {
		return false
	}
	if p.UserID == "" {
		return false
	}
	record, err := g.provider.PermissionsFor(ctx, p.UserID)
	if err != nil {
		return false
	}
	return record.Role == RoleSuperAdmin
}
