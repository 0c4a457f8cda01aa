package ports

import (
	"context"

	"github.com/craftbase/auth-api/internal/core/domain"
)

// TokenPair is what login and refresh hand back to the transport layer.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionService manages the login / refresh / logout lifecycle.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

// PasswordResetService manages the forgot-password flow.
type PasswordResetService interface {
	InitForgotPassword(ctx context.Context, email string) error
	VerifyForgotPassword(ctx context.Context, token string) error
	ConfirmForgotPassword(ctx context.Context, token, newPassword string) error
}

// TokenCodec creates and validates signed access tokens.
type TokenCodec interface {
	// Issue signs a short-lived access token for the given subject.
	Issue(userID string) (string, error)
	// Verify validates signature and expiry and returns the subject.
	Verify(token string) (string, error)
	// Subject validates the signature only, tolerating an expired token.
	// The refresh flow is the sole intended caller.
	Subject(token string) (string, error)
}
