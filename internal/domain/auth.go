package domain

import "time"

// Claim is the identity carried inside a bearer token. A claim never changes for
// the life of a token; a new claim means a new token.
type Claim struct {
	SubjectID   string
	DisplayName string
}

// IssuedToken is a signed token together with its absolute expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
