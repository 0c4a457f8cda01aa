package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/craftbase/auth-api/internal/core/domain"
	"github.com/craftbase/auth-api/internal/core/ports"
)

// ContextUserID is the echo context key under which the authenticated
// subject id is stored.
const ContextUserID = "user_id"

// Auth validates the Bearer token fully (signature and expiry) and injects
// the subject id into context.
func Auth(codec ports.TokenCodec) echo.MiddlewareFunc {
	return auth(codec, false)
}

// AuthAllowExpired validates the signature only. The refresh route uses this:
// an expired access token still proves who is asking, and possession of the
// refresh token does the rest.
func AuthAllowExpired(codec ports.TokenCodec) echo.MiddlewareFunc {
	return auth(codec, true)
}

func auth(codec ports.TokenCodec, allowExpired bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var (
				subject string
				err     error
			)
			if allowExpired {
				subject, err = codec.Subject(parts[1])
			} else {
				subject, err = codec.Verify(parts[1])
			}
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextUserID, subject)
			return next(c)
		}
	}
}
