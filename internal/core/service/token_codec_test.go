package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/craftbase/auth-api/internal/core/domain"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	token, err := codec.Issue("u1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	subject, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if subject != "u1" {
		t.Fatalf("expected subject u1, got %q", subject)
	}
}

func TestJWTCodec_Verify_WrongSecret(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	other := NewJWTCodec("other-secret", time.Hour)

	token, _ := codec.Issue("u1")
	if _, err := other.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Verify_Garbage(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	if _, err := codec.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTCodec_Verify_Expired(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	token := expiredToken(t, "secret", "u1")

	if _, err := codec.Verify(token); err != domain.ErrExpiredToken {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWTCodec_Subject_ToleratesExpiry(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	token := expiredToken(t, "secret", "u1")

	subject, err := codec.Subject(token)
	if err != nil {
		t.Fatalf("expected expired token to decode, got %v", err)
	}
	if subject != "u1" {
		t.Fatalf("expected subject u1, got %q", subject)
	}
}

func TestJWTCodec_Subject_StillChecksSignature(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	token := expiredToken(t, "wrong-secret", "u1")

	if _, err := codec.Subject(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for a forged token, got %v", err)
	}
}

func TestJWTCodec_RejectsUnexpectedAlg(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none token: %v", err)
	}

	if _, err := codec.Verify(token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func expiredToken(t *testing.T, secret, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}
