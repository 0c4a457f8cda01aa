package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/craftbase/auth-api/internal/api/metrics"
	"github.com/craftbase/auth-api/internal/core/domain"
	"github.com/craftbase/auth-api/internal/core/ports"
)

// AuthHandler exposes the session and forgot-password flows over HTTP.
// Domain errors are returned as-is; the central error handler maps them to
// status codes.
type AuthHandler struct {
	sessions ports.SessionService
	resets   ports.PasswordResetService
}

func NewAuthHandler(sessions ports.SessionService, resets ports.PasswordResetService) *AuthHandler {
	return &AuthHandler{sessions: sessions, resets: resets}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type confirmPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type sessionResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user,omitempty"`
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, user, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Refresh rotates the refresh token and issues a new access token. The
// subject comes from the Authorization token, which may be expired as long as
// its signature holds.
//
// @Summary      Refresh the token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pair, err := h.sessions.Refresh(c.Request().Context(), userID, req.RefreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues(refreshResult(err)).Inc()
		return err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout clears the active session for the authenticated user.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{})
}

// InitForgotPassword starts the reset flow. The response is 200 whether or
// not the email belongs to an account.
//
// @Summary      Request a password reset link
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /forgot-password/init [post]
func (h *AuthHandler) InitForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resets.InitForgotPassword(c.Request().Context(), req.Email); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("init", "error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("init", "success").Inc()
	return c.JSON(http.StatusOK, map[string]string{})
}

// VerifyForgotPassword checks a reset token before the client shows the
// password form.
//
// @Summary      Verify a password reset token
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Reset token"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /forgot-password/verify [get]
func (h *AuthHandler) VerifyForgotPassword(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	if err := h.resets.VerifyForgotPassword(c.Request().Context(), token); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("verify", "error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("verify", "success").Inc()
	return c.JSON(http.StatusOK, map[string]string{})
}

// ConfirmForgotPassword sets the new password and consumes the token.
//
// @Summary      Confirm a new password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  query     string                  true  "Reset token"
// @Param        body   body      confirmPasswordRequest  true  "New password"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /forgot-password/confirm [put]
func (h *AuthHandler) ConfirmForgotPassword(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "token is required")
	}

	var req confirmPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.resets.ConfirmForgotPassword(c.Request().Context(), token, req.Password); err != nil {
		metrics.PasswordResetsTotal.WithLabelValues("confirm", "error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("confirm", "success").Inc()
	return c.JSON(http.StatusOK, map[string]string{})
}

func loginResult(err error) string {
	switch err {
	case domain.ErrInvalidCredentials:
		return "invalid_credentials"
	case domain.ErrUserInactive:
		return "inactive"
	default:
		return "error"
	}
}

func refreshResult(err error) string {
	if err == domain.ErrSessionNotFound {
		return "session_not_found"
	}
	return "error"
}
