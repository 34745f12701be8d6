package projections

import (
	"context"

	"communityaction/internal/domain/identity"
)

// AdminMenuDeps holds the authorization gate for the menu projection.
type AdminMenuDeps struct {
	Gate *identity.Gate
}

// MenuItem is one entry the host platform renders into its admin menu.
type MenuItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// QueryAdminMenu returns the menu items visible to the principal. Only
// superadmins see the manage-programs entry; everyone else gets an empty
// menu, never an error.
// PRE: deps.Gate is non-nil
// POST: Returns the items, empty slice for unauthorized principals
func QueryAdminMenu(ctx context.Context, deps AdminMenuDeps, principal identity.Principal) []MenuItem {
	if !deps.Gate.IsAuthorized(ctx, principal) {
		return []MenuItem{}
	}
	return []MenuItem{
		{
			Href:  "/plugins/direct?action=managePrograms",
			Label: "CA Report",
			Icon:  "chart_bar.png",
		},
	}
}
