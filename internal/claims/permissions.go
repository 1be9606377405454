// ABOUTME: Static permission matrix mapping admin roles to capability flags
// ABOUTME: Never loaded from mutable state; super_admin holds every capability

package claims

// Capability names one of the four admin capability flags.
type Capability string

const (
	CapManageUsers      Capability = "can_manage_users"
	CapManagePublishers Capability = "can_manage_publishers"
	CapManageContent    Capability = "can_manage_content"
	CapManageSystem     Capability = "can_manage_system"
)

// PermissionSet holds the four admin capability flags.
type PermissionSet struct {
	CanManageUsers      bool `json:"can_manage_users"`
	CanManagePublishers bool `json:"can_manage_publishers"`
	CanManageContent    bool `json:"can_manage_content"`
	CanManageSystem     bool `json:"can_manage_system"`
}

// Has reports whether the set includes the given capability. Unknown
// capabilities are never held.
func (p PermissionSet) Has(c Capability) bool {
	switch c {
	case CapManageUsers:
		return p.CanManageUsers
	case CapManagePublishers:
		return p.CanManagePublishers
	case CapManageContent:
		return p.CanManageContent
	case CapManageSystem:
		return p.CanManageSystem
	}
	return false
}

// PermissionsFor returns the capability flags for an admin role.
// super_admin maps to all capabilities; every other role maps to exactly
// the capability matching its name. Unknown roles hold nothing.
func PermissionsFor(role AdminRole) PermissionSet {
	switch role {
	case RoleSuperAdmin:
		return PermissionSet{
			CanManageUsers:      true,
			CanManagePublishers: true,
			CanManageContent:    true,
			CanManageSystem:     true,
		}
	case RoleUserAdmin:
		return PermissionSet{CanManageUsers: true}
	case RolePublisherAdmin:
		return PermissionSet{CanManagePublishers: true}
	case RoleContentAdmin:
		return PermissionSet{CanManageContent: true}
	}
	return PermissionSet{}
}
