package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/services"
)

// NotifyHandler triggers reminder digests on demand. Scheduling is left to
// whatever calls the endpoint (cron, a phone shortcut, and so on).
type NotifyHandler struct {
	auth      auth.Authenticator
	todos     TodoStore
	birthdays BirthdayStore
	sender    DigestSender
	log       zerolog.Logger
}

// NewNotifyHandler creates the digest handler. sender may be nil when the
// notifier is not configured.
func NewNotifyHandler(a auth.Authenticator, todos TodoStore, birthdays BirthdayStore, sender DigestSender, log zerolog.Logger) *NotifyHandler {
	return &NotifyHandler{auth: a, todos: todos, birthdays: birthdays, sender: sender, log: log}
}

// Digest pushes today's birthdays and overdue todos to the configured LINE
// account.
func (h *NotifyHandler) Digest(c echo.Context) error {
	if h.sender == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "notifier not configured"})
	}
	user, ok := h.auth.CurrentUser()
	if !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	ctx := c.Request().Context()
	todos, err := fetchOnce(ctx, h.todos.Subscribe, user.ID)
	if err != nil {
		return writeError(c, err)
	}
	birthdays, err := fetchOnce(ctx, h.birthdays.Subscribe, user.ID)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.sender.SendDigest(todos, birthdays, time.Now()); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}
