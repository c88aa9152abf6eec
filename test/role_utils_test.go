package main

import (
	"testing"

	"sufra/utils"
)

func TestValidateAndNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Admin", "admin", true},
		{"employee", "employee", true},
		{"CUSTOMER", "customer", true},
		{"merchant", "merchant", false},
		{"unknown", "unknown", false},
	}

	for _, c := range cases {
		got, ok := utils.ValidateAndNormalizeRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ValidateAndNormalizeRole(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
