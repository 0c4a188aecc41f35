package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/models"
	"github.com/pexkit/pexkit/internal/services"
	"github.com/pexkit/pexkit/internal/state"
	"github.com/pexkit/pexkit/internal/views"
)

// BirthdayHandler serves the birthday page's intents.
type BirthdayHandler struct {
	auth      auth.Authenticator
	birthdays BirthdayStore
	view      *state.BirthdayView
	log       zerolog.Logger
}

// NewBirthdayHandler creates a handler over the given sync slice and view
// state.
func NewBirthdayHandler(a auth.Authenticator, birthdays BirthdayStore, view *state.BirthdayView, log zerolog.Logger) *BirthdayHandler {
	return &BirthdayHandler{auth: a, birthdays: birthdays, view: view, log: log}
}

type birthdayListResponse struct {
	Buckets views.Buckets       `json:"buckets"`
	Stats   views.BirthdayStats `json:"stats"`
	Mode    views.ViewMode      `json:"mode"`
	Search  string              `json:"search"`
}

// List writes any view-state intents from the query string, then returns the
// searched, bucketed view over the latest snapshot.
func (h *BirthdayHandler) List(c echo.Context) error {
	if v := c.QueryParam("mode"); v != "" {
		m := views.ViewMode(v)
		if !m.Valid() {
			return writeError(c, &models.ValidationError{Field: "mode", Reason: "unknown view mode"})
		}
		h.view.Mode.Set(m)
	}
	if c.QueryParams().Has("search") {
		h.view.Search.Set(c.QueryParam("search"))
	}

	birthdays, err := fetchOnce(c.Request().Context(), h.birthdays.Subscribe, userID(h.auth))
	if err != nil {
		return writeError(c, err)
	}

	now := time.Now()
	search := h.view.Search.Get()
	return c.JSON(http.StatusOK, birthdayListResponse{
		Buckets: views.GroupBirthdays(views.SearchBirthdays(birthdays, search), now),
		Stats:   views.ComputeBirthdayStats(birthdays, now),
		Mode:    h.view.Mode.Get(),
		Search:  search,
	})
}

// Stream sends the derived view as a server-sent event on every remote
// change.
func (h *BirthdayHandler) Stream(c echo.Context) error {
	ch := h.birthdays.Subscribe(c.Request().Context(), userID(h.auth))
	return stream(c, ch, func(birthdays []models.Birthday) interface{} {
		now := time.Now()
		search := h.view.Search.Get()
		return birthdayListResponse{
			Buckets: views.GroupBirthdays(views.SearchBirthdays(birthdays, search), now),
			Stats:   views.ComputeBirthdayStats(birthdays, now),
			Mode:    h.view.Mode.Get(),
			Search:  search,
		}
	})
}

// Create adds a birthday for the signed-in user.
func (h *BirthdayHandler) Create(c echo.Context) error {
	user, ok := h.auth.CurrentUser()
	if !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var in models.BirthdayInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}

	id, err := h.birthdays.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}
	h.view.AddDialogOpen.Set(false)
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// Update applies a partial update; absent fields stay untouched and explicit
// nulls clear.
func (h *BirthdayHandler) Update(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var u models.BirthdayUpdate
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if err := h.birthdays.Update(c.Request().Context(), c.Param("id"), u); err != nil {
		return writeError(c, err)
	}
	h.view.EditingID.Set("")
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a birthday.
func (h *BirthdayHandler) Delete(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}
	if err := h.birthdays.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
