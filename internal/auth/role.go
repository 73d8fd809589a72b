package auth

// Role is the closed set of employee roles. Stored as its string form in the
// employees table and in issued tokens.
type Role string

const (
	RoleOwner            Role = "Owner"
	RoleAdmin            Role = "Admin"
	RoleStoreManager     Role = "StoreManager"
	RoleInventoryManager Role = "InventoryManager"
	RoleCashier          Role = "Cashier"
)

// ParseRole maps a stored role name onto the enumeration. Unknown names come
// back as ok=false so callers can refuse the token instead of silently
// granting nothing.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleOwner, RoleAdmin, RoleStoreManager, RoleInventoryManager, RoleCashier:
		return Role(s), true
	}
	return "", false
}

// IsPrivileged reports whether the role bypasses store scoping. Owner and
// Admin operate across all stores.
func (r Role) IsPrivileged() bool {
	return r == RoleOwner || r == RoleAdmin
}

// IsSuper reports whether the role bypasses permission checks entirely.
// Owner is the unconditional super-role.
func (r Role) IsSuper() bool {
	return r == RoleOwner
}

func (r Role) String() string {
	return string(r)
}
