package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/craftbase/auth-api/internal/api/metrics"
	"github.com/craftbase/auth-api/internal/core/domain"
	"github.com/craftbase/auth-api/internal/core/ports"
)

// LoginThrottle consults the brute force gate before a login attempt and
// records a failure when the attempt comes back with invalid credentials.
// The gate is keyed on the submitted email, matching the reset signal the
// session service emits on success.
//
// Gate errors fail open: a throttle outage must not lock everyone out.
func LoginThrottle(gate ports.BruteForceGate, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := loginIdentity(c)
			if identity == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			allowed, err := gate.Allow(ctx, identity)
			if err != nil {
				log.Warn().Err(err).Msg("brute force check failed, allowing attempt")
				return next(c)
			}
			if !allowed {
				metrics.BruteForceBlocksTotal.Inc()
				return domain.ErrTooManyAttempts
			}

			err = next(c)
			if errors.Is(err, domain.ErrInvalidCredentials) {
				if rerr := gate.RegisterFailure(ctx, identity); rerr != nil {
					log.Warn().Err(rerr).Msg("brute force failure count failed")
				}
			}
			return err
		}
	}
}

// loginIdentity peeks the email out of the request body and restores the body
// so the handler can still bind it. An unreadable or non-JSON body yields an
// empty identity and the throttle steps aside; request validation rejects it
// downstream anyway.
func loginIdentity(c echo.Context) string {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return ""
	}
	c.Request().Body = io.NopCloser(bytes.NewReader(body))

	var req struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(req.Email))
}
