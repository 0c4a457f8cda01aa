package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/craftbase/auth-api/internal/core/domain"
)

// stubCredentialStore is an in-memory CredentialStore with the same
// conditional-update semantics the mongo adapter provides.
type stubCredentialStore struct {
	users map[string]*domain.User
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{users: make(map[string]*domain.User)}
}

func (r *stubCredentialStore) add(id, email, password string, hasAccess bool) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &domain.User{
		ID:           id,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		HasAccess:    hasAccess,
		Role:         "user",
	}
	r.users[id] = u
	return u
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubCredentialStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubCredentialStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubCredentialStore) FindByResetToken(_ context.Context, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ResetToken != "" && u.ResetToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubCredentialStore) SetRefreshToken(_ context.Context, userID, token string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *stubCredentialStore) RotateRefreshToken(_ context.Context, userID, current, next string) error {
	u, ok := r.users[userID]
	if !ok || u.RefreshToken == "" || u.RefreshToken != current {
		return domain.ErrSessionNotFound
	}
	u.RefreshToken = next
	return nil
}

func (r *stubCredentialStore) ClearRefreshToken(_ context.Context, userID string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = ""
	return nil
}

func (r *stubCredentialStore) SetResetToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = token
	u.ResetTokenExp = expiresAt
	return nil
}

func (r *stubCredentialStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExp = time.Time{}
	return nil
}
