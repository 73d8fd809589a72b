package auth

// Claims is the resolved per-request authorization context: who is acting,
// in what role, for which store, with which permissions. It is built once by
// the authentication middleware and threaded as an ordinary parameter from
// there on; nothing reads it from ambient state.
type Claims struct {
	EmployeeID  uint
	Email       string
	Role        Role
	StoreID     *uint
	Permissions PermissionSet
}

// HasStore reports whether the employee has an assigned store.
func (c Claims) HasStore() bool {
	return c.StoreID != nil
}
