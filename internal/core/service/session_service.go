package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftbase/auth-api/internal/core/domain"
	"github.com/craftbase/auth-api/internal/core/ports"
)

// SessionManager implements login, refresh-token rotation and logout.
// A user holds at most one active refresh token; every login or refresh
// replaces it, invalidating the previous value.
type SessionManager struct {
	store ports.CredentialStore
	codec ports.TokenCodec
	brute ports.BruteForceGate
	log   zerolog.Logger
}

func NewSessionManager(store ports.CredentialStore, codec ports.TokenCodec, brute ports.BruteForceGate, log zerolog.Logger) *SessionManager {
	return &SessionManager{store: store, codec: codec, brute: brute, log: log}
}

func (s *SessionManager) Login(ctx context.Context, email, password string) (*ports.TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown email must look exactly like a wrong password.
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !user.HasAccess {
		return nil, nil, domain.ErrUserInactive
	}

	refresh := uuid.NewString()
	if err := s.store.SetRefreshToken(ctx, user.ID, refresh); err != nil {
		return nil, nil, err
	}

	access, err := s.codec.Issue(user.ID)
	if err != nil {
		return nil, nil, err
	}

	if s.brute != nil {
		// Best effort: a broken throttle must not fail a valid login.
		if err := s.brute.Reset(ctx, strings.ToLower(strings.TrimSpace(email))); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("brute force counter reset failed")
		}
	}

	user.RefreshToken = refresh
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

func (s *SessionManager) Refresh(ctx context.Context, userID, refreshToken string) (*ports.TokenPair, error) {
	if userID == "" || refreshToken == "" {
		return nil, domain.ErrSessionNotFound
	}

	// The conditional update is the serialization point: a concurrent
	// rotation or logout leaves nothing for the filter to match, so replays
	// of a stale token fail here.
	next := uuid.NewString()
	if err := s.store.RotateRefreshToken(ctx, userID, refreshToken, next); err != nil {
		return nil, err
	}

	access, err := s.codec.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: next}, nil
}

// Logout clears any active session. Logging out twice succeeds; an unknown
// subject surfaces domain.ErrUserNotFound.
func (s *SessionManager) Logout(ctx context.Context, userID string) error {
	if _, err := s.store.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.store.ClearRefreshToken(ctx, userID)
}
