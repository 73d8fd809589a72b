package auth

// Permission names a single guarded operation. Every mutating or reading
// endpoint declares the permissions it requires.
type Permission string

const (
	PermOrdersCreate   Permission = "orders:create"
	PermOrdersRead     Permission = "orders:read"
	PermRefundsCreate  Permission = "refunds:create"
	PermRefundsRead    Permission = "refunds:read"
	PermPaymentsRead   Permission = "payments:read"
	PermInventoryRead  Permission = "inventory:read"
	PermInventoryWrite Permission = "inventory:write"
)

// PermissionSet is a set-valued view over granted permission names.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from permission names, dropping unknown ones.
func NewPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		set[Permission(name)] = struct{}{}
	}
	return set
}

// Contains reports whether every required permission is in the set.
func (s PermissionSet) Contains(required ...Permission) bool {
	for _, p := range required {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// Names returns the permissions as plain strings, for embedding in a token.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for p := range s {
		names = append(names, string(p))
	}
	return names
}

// DefaultPermissions returns the permission set granted to a role. Mirrors
// the seeded role/permission assignments of the production database.
func DefaultPermissions(role Role) PermissionSet {
	switch role {
	case RoleOwner, RoleAdmin:
		return NewPermissionSet([]string{
			string(PermOrdersCreate), string(PermOrdersRead),
			string(PermRefundsCreate), string(PermRefundsRead),
			string(PermPaymentsRead),
			string(PermInventoryRead), string(PermInventoryWrite),
		})
	case RoleStoreManager:
		return NewPermissionSet([]string{
			string(PermOrdersCreate), string(PermOrdersRead),
			string(PermRefundsCreate), string(PermRefundsRead),
			string(PermPaymentsRead),
			string(PermInventoryRead), string(PermInventoryWrite),
		})
	case RoleInventoryManager:
		return NewPermissionSet([]string{
			string(PermInventoryRead), string(PermInventoryWrite),
			string(PermOrdersRead),
		})
	case RoleCashier:
		return NewPermissionSet([]string{
			string(PermOrdersCreate), string(PermOrdersRead),
			string(PermPaymentsRead), string(PermInventoryRead),
		})
	}
	return PermissionSet{}
}
