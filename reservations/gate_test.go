package reservations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name string
		auth AuthState
		cart CartState
		want Action
	}{
		{
			name: "unauthenticated with items still goes to login",
			auth: AuthState{IsAuthenticated: false},
			cart: CartState{ItemCount: 3},
			want: ActionNavigateToLogin,
		},
		{
			name: "unauthenticated with empty cart goes to login",
			auth: AuthState{IsAuthenticated: false},
			cart: CartState{ItemCount: 0},
			want: ActionNavigateToLogin,
		},
		{
			name: "authenticated with empty cart gets warning",
			auth: AuthState{IsAuthenticated: true, UserID: "u1", Role: "customer"},
			cart: CartState{ItemCount: 0},
			want: ActionShowCartEmptyWarning,
		},
		{
			name: "authenticated with items proceeds",
			auth: AuthState{IsAuthenticated: true, UserID: "u1", Role: "customer"},
			cart: CartState{ItemCount: 1},
			want: ActionNavigateToReservation,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Decide(c.auth, c.cart))
		})
	}
}

func TestAuthStateRoles(t *testing.T) {
	admin := AuthState{IsAuthenticated: true, Role: "admin"}
	assert.True(t, admin.HasRole("admin"))
	assert.True(t, admin.CanAccessAdmin())
	assert.False(t, admin.HasRole("customer"))

	customer := AuthState{IsAuthenticated: true, Role: "customer"}
	assert.False(t, customer.CanAccessAdmin())

	anonymous := AuthState{}
	assert.False(t, anonymous.HasRole("admin"))
	assert.False(t, anonymous.CanAccessAdmin())
}
