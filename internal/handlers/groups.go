package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/models"
	"github.com/pexkit/pexkit/internal/services"
)

// GroupHandler serves the birthday-group management intents.
type GroupHandler struct {
	auth   auth.Authenticator
	groups GroupStore
	log    zerolog.Logger
}

// NewGroupHandler creates a handler over the given sync slice.
func NewGroupHandler(a auth.Authenticator, groups GroupStore, log zerolog.Logger) *GroupHandler {
	return &GroupHandler{auth: a, groups: groups, log: log}
}

// List returns the user's groups, oldest first. A brand-new user sees the
// three seeded defaults.
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := fetchOnce(c.Request().Context(), h.groups.Subscribe, userID(h.auth))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string][]models.Group{"groups": groups})
}

// Create adds a group for the signed-in user.
func (h *GroupHandler) Create(c echo.Context) error {
	user, ok := h.auth.CurrentUser()
	if !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var in models.GroupInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	id, err := h.groups.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// Update renames or recolors a group.
func (h *GroupHandler) Update(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var u models.GroupUpdate
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if err := h.groups.Update(c.Request().Context(), c.Param("id"), u); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a group. Birthdays referencing it are left alone.
func (h *GroupHandler) Delete(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}
	if err := h.groups.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
