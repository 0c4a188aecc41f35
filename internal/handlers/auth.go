package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/auth"
)

// AuthHandler serves the Google sign-in round trip.
type AuthHandler struct {
	auth *auth.GoogleAuthenticator
	log  zerolog.Logger
}

// NewAuthHandler creates the auth routes' handler.
func NewAuthHandler(a *auth.GoogleAuthenticator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: a, log: log}
}

// Login redirects the browser to the Google consent screen.
func (h *AuthHandler) Login(c echo.Context) error {
	url, err := h.auth.AuthURL()
	if err != nil {
		return writeError(c, err)
	}
	return c.Redirect(http.StatusFound, url)
}

// Callback finishes the sign-in round trip.
func (h *AuthHandler) Callback(c echo.Context) error {
	user, err := h.auth.HandleCallback(c.Request().Context(), c.QueryParam("state"), c.QueryParam("code"))
	if err != nil {
		h.log.Error().Err(err).Msg("sign-in failed")
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "sign-in failed"})
	}
	return c.JSON(http.StatusOK, user)
}

// Logout drops the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.auth.SignOut(); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the signed-in user, or 401.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := h.auth.CurrentUser()
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not signed in"})
	}
	return c.JSON(http.StatusOK, user)
}
