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

// TodoHandler serves the todo page's intents.
type TodoHandler struct {
	auth  auth.Authenticator
	todos TodoStore
	view  *state.TodoView
	log   zerolog.Logger
}

// NewTodoHandler creates a handler over the given sync slice and view state.
func NewTodoHandler(a auth.Authenticator, todos TodoStore, view *state.TodoView, log zerolog.Logger) *TodoHandler {
	return &TodoHandler{auth: a, todos: todos, view: view, log: log}
}

type todoListResponse struct {
	Todos  []models.Todo    `json:"todos"`
	Stats  views.TodoStats  `json:"stats"`
	Filter views.TodoFilter `json:"filter"`
	Sort   views.TodoSort   `json:"sort"`
	Search string           `json:"search"`
}

// List writes any view-state intents from the query string, then returns the
// derived view over the latest snapshot. Stats always cover the raw list.
func (h *TodoHandler) List(c echo.Context) error {
	if v := c.QueryParam("filter"); v != "" {
		f := views.TodoFilter(v)
		if !f.Valid() {
			return writeError(c, &models.ValidationError{Field: "filter", Reason: "unknown filter"})
		}
		h.view.Filter.Set(f)
	}
	if v := c.QueryParam("sort"); v != "" {
		s := views.TodoSort(v)
		if !s.Valid() {
			return writeError(c, &models.ValidationError{Field: "sort", Reason: "unknown sort"})
		}
		h.view.Sort.Set(s)
	}
	if c.QueryParams().Has("search") {
		h.view.Search.Set(c.QueryParam("search"))
	}

	todos, err := fetchOnce(c.Request().Context(), h.todos.Subscribe, userID(h.auth))
	if err != nil {
		return writeError(c, err)
	}

	now := time.Now()
	filter, sortBy, search := h.view.Filter.Get(), h.view.Sort.Get(), h.view.Search.Get()
	return c.JSON(http.StatusOK, todoListResponse{
		Todos:  views.ApplyTodos(todos, filter, search, sortBy, now),
		Stats:  views.ComputeTodoStats(todos, now),
		Filter: filter,
		Sort:   sortBy,
		Search: search,
	})
}

// Stream sends the derived view as a server-sent event on every remote
// change, for as long as the client stays connected.
func (h *TodoHandler) Stream(c echo.Context) error {
	ch := h.todos.Subscribe(c.Request().Context(), userID(h.auth))
	return stream(c, ch, func(todos []models.Todo) interface{} {
		now := time.Now()
		filter, sortBy, search := h.view.Filter.Get(), h.view.Sort.Get(), h.view.Search.Get()
		return todoListResponse{
			Todos:  views.ApplyTodos(todos, filter, search, sortBy, now),
			Stats:  views.ComputeTodoStats(todos, now),
			Filter: filter,
			Sort:   sortBy,
			Search: search,
		}
	})
}

// Create adds a todo for the signed-in user.
func (h *TodoHandler) Create(c echo.Context) error {
	user, ok := h.auth.CurrentUser()
	if !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var in models.TodoInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	id, err := h.todos.Create(c.Request().Context(), user.ID, in)
	if err != nil {
		return writeError(c, err)
	}
	h.view.AddDialogOpen.Set(false)
	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// Update applies a partial update; absent fields stay untouched and explicit
// nulls clear.
func (h *TodoHandler) Update(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var u models.TodoUpdate
	if err := c.Bind(&u); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if err := h.todos.Update(c.Request().Context(), c.Param("id"), u); err != nil {
		return writeError(c, err)
	}
	h.view.EditingID.Set("")
	return c.NoContent(http.StatusNoContent)
}

type toggleRequest struct {
	Completed bool `json:"completed"`
}

// Toggle flips completion, keeping completedAt consistent.
func (h *TodoHandler) Toggle(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}

	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed request body"})
	}
	if err := h.todos.ToggleComplete(c.Request().Context(), c.Param("id"), req.Completed); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a todo.
func (h *TodoHandler) Delete(c echo.Context) error {
	if _, ok := h.auth.CurrentUser(); !ok {
		return writeError(c, services.ErrUnauthenticated)
	}
	if err := h.todos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
