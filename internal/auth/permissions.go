package auth

const (
	RoleAdmin          = "Admin"
	RoleHRManager      = "HR Manager"
	RoleProjectManager = "Project Manager"
	RoleViewer         = "Viewer"
)

const (
	CanCreateProfiles = "create_profiles"
	CanViewProfiles   = "view_profiles"
	CanRunMatching    = "run_matching"
	CanViewAnalytics  = "view_analytics"
	CanUpdateMatches  = "update_matches"
	CanExportData     = "export_data"
)

// Capabilities lists every capability in display order.
var Capabilities = []string{
	CanCreateProfiles,
	CanViewProfiles,
	CanRunMatching,
	CanViewAnalytics,
	CanUpdateMatches,
	CanExportData,
}

var rolePermissions = map[string][]string{
	RoleAdmin:     Capabilities,
	RoleHRManager: Capabilities,
	RoleProjectManager: {
		CanViewProfiles,
		CanRunMatching,
		CanViewAnalytics,
		CanUpdateMatches,
	},
	RoleViewer: {
		CanViewProfiles,
		CanViewAnalytics,
	},
}

// Permissions returns a copy of the role's capabilities. Unknown roles
// get none.
func Permissions(role string) []string {
	perms := rolePermissions[role]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}

func IsRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

func Can(role, capability string) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}
