// Package handlers is the HTTP presentation shell: REST endpoints plus
// server-sent-event streams over the sync layer's live snapshots. Handlers
// write user intents into the view-state slots and issue mutation commands;
// they never transform records themselves.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pexkit/pexkit/internal/auth"
	"github.com/pexkit/pexkit/internal/models"
	"github.com/pexkit/pexkit/internal/notify"
	"github.com/pexkit/pexkit/internal/services"
	"github.com/pexkit/pexkit/internal/state"
)

// fetchTimeout bounds one-shot snapshot reads for plain GET endpoints.
const fetchTimeout = 10 * time.Second

// TodoStore is the slice of the sync layer the todo handlers consume.
type TodoStore interface {
	Subscribe(ctx context.Context, userID string) <-chan services.Snapshot[models.Todo]
	Create(ctx context.Context, userID string, in models.TodoInput) (string, error)
	Update(ctx context.Context, id string, u models.TodoUpdate) error
	ToggleComplete(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

// BirthdayStore is the slice of the sync layer the birthday handlers consume.
type BirthdayStore interface {
	Subscribe(ctx context.Context, userID string) <-chan services.Snapshot[models.Birthday]
	Create(ctx context.Context, userID string, in models.BirthdayInput) (string, error)
	Update(ctx context.Context, id string, u models.BirthdayUpdate) error
	Delete(ctx context.Context, id string) error
}

// GroupStore is the slice of the sync layer the group handlers consume.
type GroupStore interface {
	Subscribe(ctx context.Context, userID string) <-chan services.Snapshot[models.Group]
	Create(ctx context.Context, userID string, in models.GroupInput) (string, error)
	Update(ctx context.Context, id string, u models.GroupUpdate) error
	Delete(ctx context.Context, id string) error
}

// DigestSender pushes a reminder digest; see notify.Notifier.
type DigestSender interface {
	SendDigest(todos []models.Todo, birthdays []models.Birthday, now time.Time) error
}

// Deps carries everything Register needs to wire the routes.
type Deps struct {
	Auth      *auth.GoogleAuthenticator
	Todos     TodoStore
	Birthdays BirthdayStore
	Groups    GroupStore
	Notifier  *notify.Notifier
	Log       zerolog.Logger
}

// Register wires all routes onto e.
func Register(e *echo.Echo, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.Log)
	todoHandler := NewTodoHandler(d.Auth, d.Todos, state.NewTodoView(), d.Log)
	birthdayHandler := NewBirthdayHandler(d.Auth, d.Birthdays, state.NewBirthdayView(), d.Log)
	groupHandler := NewGroupHandler(d.Auth, d.Groups, d.Log)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/callback", authHandler.Callback)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/api/me", authHandler.Me)

	e.GET("/api/todos", todoHandler.List)
	e.GET("/api/todos/stream", todoHandler.Stream)
	e.POST("/api/todos", todoHandler.Create)
	e.PATCH("/api/todos/:id", todoHandler.Update)
	e.POST("/api/todos/:id/toggle", todoHandler.Toggle)
	e.DELETE("/api/todos/:id", todoHandler.Delete)

	e.GET("/api/birthdays", birthdayHandler.List)
	e.GET("/api/birthdays/stream", birthdayHandler.Stream)
	e.POST("/api/birthdays", birthdayHandler.Create)
	e.PATCH("/api/birthdays/:id", birthdayHandler.Update)
	e.DELETE("/api/birthdays/:id", birthdayHandler.Delete)

	e.GET("/api/groups", groupHandler.List)
	e.POST("/api/groups", groupHandler.Create)
	e.PATCH("/api/groups/:id", groupHandler.Update)
	e.DELETE("/api/groups/:id", groupHandler.Delete)

	var sender DigestSender
	if d.Notifier != nil {
		sender = d.Notifier
	}
	notifyHandler := NewNotifyHandler(d.Auth, d.Todos, d.Birthdays, sender, d.Log)
	e.POST("/api/notify/digest", notifyHandler.Digest)
}

// userID returns the current user's ID, or "" when signed out.
func userID(a auth.Authenticator) string {
	if user, ok := a.CurrentUser(); ok {
		return user.ID
	}
	return ""
}

// fetchOnce opens a subscription just long enough to take a single snapshot.
func fetchOnce[T any](ctx context.Context, subscribe func(context.Context, string) <-chan services.Snapshot[T], userID string) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	select {
	case snap, ok := <-subscribe(ctx, userID):
		if !ok {
			return nil, fmt.Errorf("subscription closed before the first snapshot")
		}
		if snap.Err != nil {
			return nil, snap.Err
		}
		return snap.Records, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// stream pipes every snapshot to the client as a server-sent event until the
// subscription ends. A subscription failure terminates the stream with one
// error event; recovery is the client's reload.
func stream[T any](c echo.Context, ch <-chan services.Snapshot[T], render func([]T) interface{}) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	for snap := range ch {
		if snap.Err != nil {
			fmt.Fprintf(res, "event: error\ndata: %q\n\n", snap.Err.Error())
			res.Flush()
			return nil
		}
		if _, err := io.WriteString(res, "data: "); err != nil {
			return nil
		}
		if err := enc.Encode(render(snap.Records)); err != nil {
			return nil
		}
		if _, err := io.WriteString(res, "\n"); err != nil {
			return nil
		}
		res.Flush()
	}
	return nil
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not signed in"})
	case status.Code(err) == codes.NotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	}
}
