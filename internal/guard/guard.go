// Package guard holds the pure authorization decisions: permission checks
// and store scoping. Functions here take already-resolved claims and
// already-fetched resource state and return allow/deny; they never touch the
// database or the request.
package guard

import "pos-service/internal/auth"

// HasPermissions reports whether the claims satisfy every required
// permission. The super-role passes unconditionally.
func HasPermissions(claims auth.Claims, required ...auth.Permission) bool {
	if claims.Role.IsSuper() {
		return true
	}
	return claims.Permissions.Contains(required...)
}

// CanAccessStore reports whether the claims may act on resources belonging
// to the given store: privileged roles anywhere, everyone else only in their
// assigned store.
func CanAccessStore(claims auth.Claims, storeID uint) bool {
	if claims.Role.IsPrivileged() {
		return true
	}
	return claims.StoreID != nil && *claims.StoreID == storeID
}

// CanAccessOrderResource decides access to an order-shaped resource (orders,
// payments, order items): privileged roles anywhere, store roles within
// their store, and cashiers additionally on resources they created.
func CanAccessOrderResource(claims auth.Claims, storeID uint, ownerEmployeeID uint) bool {
	if CanAccessStore(claims, storeID) {
		return true
	}
	if claims.Role == auth.RoleCashier && claims.EmployeeID == ownerEmployeeID {
		return true
	}
	return false
}
