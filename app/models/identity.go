package models

import "strings"

// Identity is the verified caller identity handed out by the sign-in provider.
type Identity struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PrimaryEmail string `json:"primary_email"`
}

// IsZero reports whether the identity carries no provider id.
func (i Identity) IsZero() bool {
	return strings.TrimSpace(i.ID) == ""
}
