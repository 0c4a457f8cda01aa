package ports

import (
	"context"
	"time"

	"github.com/craftbase/auth-api/internal/core/domain"
)

// CredentialStore defines the persistence contract for user credential records.
//
// RotateRefreshToken is the serialization point for concurrent session
// operations: the update must be conditional on the stored refresh token still
// holding the presented value, so that of two racing rotations only the first
// one to persist wins.
type CredentialStore interface {
	// FindByEmail resolves a user by email, matched case-insensitively.
	// Returns domain.ErrUserNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID resolves a user by its stable identifier.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByResetToken resolves the user currently holding the given reset
	// token. Expiry is not checked here; callers decide what expired means.
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)

	// SetRefreshToken overwrites the stored refresh token unconditionally,
	// invalidating whatever session was active before.
	SetRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken swaps current for next in a single conditional
	// update. Returns domain.ErrSessionNotFound when the stored value no
	// longer equals current (rotated concurrently, logged out, or never set).
	RotateRefreshToken(ctx context.Context, userID, current, next string) error

	// ClearRefreshToken removes the stored refresh token. Clearing an already
	// cleared token is not an error.
	ClearRefreshToken(ctx context.Context, userID string) error

	// SetResetToken stores a reset token and its absolute expiry, replacing
	// any previous one.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// UpdatePassword persists a new password hash and clears the reset token
	// and its expiry in the same write, enforcing single use.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}
