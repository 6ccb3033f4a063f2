package auth

import "strings"

const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleCustomer = "CUSTOMER"
)

// Principal is the acting identity resolved from validated claims. Every
// usecase receives it and enforces its own authorization rule.
type Principal struct {
	UserID       string
	SessionID    string
	Roles        []string
	RestaurantID string
}

// PrincipalFromClaims projects validated JWT claims into a Principal.
func PrincipalFromClaims(claims *Claims) Principal {
	if claims == nil {
		return Principal{}
	}
	return Principal{
		UserID:       claims.RegisteredClaims.Subject,
		SessionID:    claims.SessionID,
		Roles:        claims.Roles,
		RestaurantID: claims.RestaurantID,
	}
}

// HasRole reports whether the principal carries the given role, case-insensitively.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(r), role) {
			return true
		}
	}
	return false
}

// CanManageRestaurant reports whether the principal may mutate inventory and
// rules for the given restaurant: platform admins always, managers only their own.
func (p Principal) CanManageRestaurant(restaurantID string) bool {
	if p.HasRole(RoleAdmin) {
		return true
	}
	return p.HasRole(RoleManager) && p.RestaurantID != "" && p.RestaurantID == restaurantID
}

// Owns reports whether the principal is the customer the booking belongs to.
func (p Principal) Owns(customerID string) bool {
	return p.UserID != "" && p.UserID == customerID
}
