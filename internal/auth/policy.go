package auth

import "errors"

// ErrUnauthorized indicates the caller failed the admin access policy.
var ErrUnauthorized = errors.New("unauthorized")

// Policy is the single admin access gate: every mutating admin path goes
// through the same email check.
type Policy struct {
	AdminEmail string
}

// IsAuthorized reports whether the principal may use the admin surface:
// it must be an authenticated session for the configured librarian address.
func (p Policy) IsAuthorized(pr *Principal) bool {
	return pr != nil && pr.Authenticated && pr.Email == p.AdminEmail
}
