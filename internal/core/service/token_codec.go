package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/craftbase/auth-api/internal/core/domain"
)

const defaultAccessTokenTTL = 15 * time.Minute

// JWTCodec issues and validates HS256 access tokens carrying the user id as
// subject. It is stateless; validity is purely signature plus expiry.
type JWTCodec struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTCodec(secret string, tokenTTL time.Duration) *JWTCodec {
	if tokenTTL <= 0 {
		tokenTTL = defaultAccessTokenTTL
	}
	return &JWTCodec{secret: []byte(secret), tokenTTL: tokenTTL}
}

func (c *JWTCodec) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.tokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the subject.
func (c *JWTCodec) Verify(token string) (string, error) {
	return c.parse(token, false)
}

// Subject checks the signature only. An expired but authentic token still
// yields its subject; the refresh flow relies on this as its recovery path.
func (c *JWTCodec) Subject(token string) (string, error) {
	return c.parse(token, true)
}

func (c *JWTCodec) parse(token string, ignoreExpiry bool) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if ignoreExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
