package utils

import (
	"strings"
)

var ValidUserRoles = map[string]bool{
	"admin":    true,
	"employee": true,
	"customer": true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (lowercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(role)
	return normalized, ValidUserRoles[normalized]
}
