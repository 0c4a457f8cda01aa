package domain

import "errors"

// ErrInvalidCredentials covers both an unknown email and a wrong password so
// login failures never reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrUserInactive = errors.New("user has no access")
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound is returned when a presented refresh token does not match
// the stored one, including the case where no session is active at all.
var ErrSessionNotFound = errors.New("session not found")

// ErrResetTokenNotFound covers unknown and expired reset tokens alike.
var ErrResetTokenNotFound = errors.New("reset token not found")

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token expired")
var ErrTooManyAttempts = errors.New("too many attempts")
