package domain

import "time"

// User is a calendar owner as held by the credential store.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claim returns the identity embedded in tokens issued for the user.
func (u *User) Claim() Claim {
	return Claim{SubjectID: u.ID, DisplayName: u.Name}
}
