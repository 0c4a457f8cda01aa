package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftbase/auth-api/internal/core/domain"
	"github.com/craftbase/auth-api/internal/core/ports"
)

const (
	defaultResetTokenTTL = 24 * time.Hour

	// ResetMailTemplate identifies the notification template for reset links.
	ResetMailTemplate = "password-reset"
)

// PasswordResetManager implements the forgot-password flow: a single-use reset
// token with an absolute expiry, delivered out-of-band by the mail dispatcher.
type PasswordResetManager struct {
	store    ports.CredentialStore
	mail     ports.MailDispatcher
	tokenTTL time.Duration
	resetURL string
	log      zerolog.Logger
}

func NewPasswordResetManager(store ports.CredentialStore, mail ports.MailDispatcher, tokenTTL time.Duration, resetURL string, log zerolog.Logger) *PasswordResetManager {
	if tokenTTL <= 0 {
		tokenTTL = defaultResetTokenTTL
	}
	return &PasswordResetManager{store: store, mail: mail, tokenTTL: tokenTTL, resetURL: resetURL, log: log}
}

// InitForgotPassword starts the flow for the given email. The caller-visible
// outcome is identical whether or not the account exists; an unknown email is
// only recorded in the logs.
func (s *PasswordResetManager) InitForgotPassword(ctx context.Context, email string) error {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Error().Str("email", email).Msg("forgot password requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(s.tokenTTL)
	if err := s.store.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return err
	}

	// Fire and forget: the response does not wait for delivery and a failed
	// send never reaches the caller.
	s.mail.Enqueue(ports.Mail{
		Recipient:  user.Email,
		TemplateID: ResetMailTemplate,
		Variables: map[string]string{
			"resetLink": fmt.Sprintf("%s?token=%s", s.resetURL, token),
			"firstName": user.FirstName,
		},
	})
	return nil
}

// VerifyForgotPassword checks that a reset token exists and has not expired.
// No mutation; clients call this before showing the password form.
func (s *PasswordResetManager) VerifyForgotPassword(ctx context.Context, token string) error {
	_, err := s.userForToken(ctx, token)
	return err
}

// ConfirmForgotPassword sets the new password and consumes the token.
func (s *PasswordResetManager) ConfirmForgotPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userForToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// UpdatePassword clears the reset token in the same write; reusing the
	// token afterwards fails the lookup.
	return s.store.UpdatePassword(ctx, user.ID, string(hash))
}

func (s *PasswordResetManager) userForToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrResetTokenNotFound
	}
	user, err := s.store.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrResetTokenNotFound
		}
		return nil, err
	}
	if !user.ResetTokenValid(time.Now().UTC()) {
		return nil, domain.ErrResetTokenNotFound
	}
	return user, nil
}
