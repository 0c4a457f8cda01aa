package domain

import "time"

// User is the credential record this service manages. Registration lives
// elsewhere; this core only mutates the session fields, the reset fields and
// the password hash.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	PasswordHash  string    `json:"-"`
	HasAccess     bool      `json:"has_access"`
	Role          string    `json:"role"`
	RefreshToken  string    `json:"-"`
	ResetToken    string    `json:"-"`
	ResetTokenExp time.Time `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionActive reports whether the user currently holds a refresh token.
func (u *User) SessionActive() bool {
	return u.RefreshToken != ""
}

// ResetTokenValid reports whether the stored reset token exists and has not
// passed its expiry. An expired token is treated exactly like an absent one.
func (u *User) ResetTokenValid(now time.Time) bool {
	if u.ResetToken == "" || u.ResetTokenExp.IsZero() {
		return false
	}
	return now.Before(u.ResetTokenExp)
}
