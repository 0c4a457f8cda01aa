package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftbase/auth-api/internal/api/middleware"
)

// ctxUserID extracts the subject id injected by the Auth middleware. An empty
// value means the route was wired without the middleware or the token carried
// no subject; either way the request is unusable.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
