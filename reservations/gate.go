// Package reservations holds the precondition checks that guard the
// cart-to-reservation workflow.
package reservations

// Action is the outcome of a reservation initiation attempt.
type Action string

const (
	ActionNavigateToLogin       Action = "navigate_to_login"
	ActionShowCartEmptyWarning  Action = "show_cart_empty_warning"
	ActionNavigateToReservation Action = "navigate_to_reservation"
)

// AuthState is a snapshot of the caller's authentication at the moment the
// action fires. Passed in explicitly rather than read from ambient state so
// the gate stays testable.
type AuthState struct {
	IsAuthenticated bool
	UserID          string
	Role            string
}

// HasRole reports whether the session carries any of the given roles.
func (a AuthState) HasRole(roles ...string) bool {
	if !a.IsAuthenticated {
		return false
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// CanAccessAdmin reports whether the session may reach the dashboard.
func (a AuthState) CanAccessAdmin() bool {
	return a.HasRole("admin", "employee")
}

// CartState is the only cart fact the gate needs: how many lines it holds.
type CartState struct {
	ItemCount int
}

// Decide evaluates the reservation preconditions in order, first match wins.
// Authentication is checked before cart contents so an unauthenticated
// caller is never shown a cart-specific message.
func Decide(auth AuthState, cart CartState) Action {
	if !auth.IsAuthenticated {
		return ActionNavigateToLogin
	}
	if cart.ItemCount == 0 {
		return ActionShowCartEmptyWarning
	}
	return ActionNavigateToReservation
}
