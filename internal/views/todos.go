// Package views derives display views from raw record lists. Everything in
// here is pure: the same records, view state, and reference time always
// produce the same output.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/pexkit/pexkit/internal/models"
)

// TodoFilter selects which todos are shown. Exactly one filter is active at
// a time.
type TodoFilter string

const (
	FilterAll       TodoFilter = "all"
	FilterActive    TodoFilter = "active"
	FilterCompleted TodoFilter = "completed"
	FilterOverdue   TodoFilter = "overdue"
	FilterToday     TodoFilter = "today"
	FilterWeek      TodoFilter = "week"
)

// Valid reports whether f is a known filter.
func (f TodoFilter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted, FilterOverdue, FilterToday, FilterWeek:
		return true
	}
	return false
}

// TodoSort selects the ordering of the displayed list.
type TodoSort string

const (
	SortPriority     TodoSort = "priority"
	SortDueDate      TodoSort = "dueDate"
	SortAlphabetical TodoSort = "alphabetical"
	SortCreatedAt    TodoSort = "createdAt"
)

// Valid reports whether s is a known sort.
func (s TodoSort) Valid() bool {
	switch s {
	case SortPriority, SortDueDate, SortAlphabetical, SortCreatedAt:
		return true
	}
	return false
}

// ApplyTodos runs filter, then search, then sort over todos and returns a
// new slice. The input is never mutated.
func ApplyTodos(todos []models.Todo, filter TodoFilter, search string, by TodoSort, now time.Time) []models.Todo {
	result := FilterTodos(todos, filter, now)
	result = SearchTodos(result, search)
	return SortTodos(result, by)
}

// FilterTodos keeps the todos matching the filter, relative to now.
func FilterTodos(todos []models.Todo, filter TodoFilter, now time.Time) []models.Todo {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekEnd := dayStart.AddDate(0, 0, 8)

	keep := func(t models.Todo) bool {
		switch filter {
		case FilterActive:
			return !t.Completed
		case FilterCompleted:
			return t.Completed
		case FilterOverdue:
			return !t.Completed && t.DueDate != nil && t.DueDate.Before(dayStart)
		case FilterToday:
			return t.DueDate != nil && !t.DueDate.Before(dayStart) && t.DueDate.Before(dayEnd)
		case FilterWeek:
			return t.DueDate != nil && !t.DueDate.Before(dayStart) && t.DueDate.Before(weekEnd)
		default:
			return true
		}
	}

	result := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

// SearchTodos keeps the todos whose title, description, or any tag contains
// the query, case-insensitively. An empty query keeps everything.
func SearchTodos(todos []models.Todo, query string) []models.Todo {
	if query == "" {
		return todos
	}
	q := strings.ToLower(query)

	matches := func(t models.Todo) bool {
		if strings.Contains(strings.ToLower(t.Title), q) {
			return true
		}
		if strings.Contains(strings.ToLower(t.Description), q) {
			return true
		}
		for _, tag := range t.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true
			}
		}
		return false
	}

	result := make([]models.Todo, 0, len(todos))
	for _, t := range todos {
		if matches(t) {
			result = append(result, t)
		}
	}
	return result
}

// SortTodos returns a sorted copy of todos. All orders are stable, so equal
// records keep their relative input order; with the dueDate sort, records
// without a due date land after every dated one.
func SortTodos(todos []models.Todo, by TodoSort) []models.Todo {
	result := make([]models.Todo, len(todos))
	copy(result, todos)

	switch by {
	case SortPriority:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	case SortDueDate:
		sort.SliceStable(result, func(i, j int) bool {
			a, b := result[i].DueDate, result[j].DueDate
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.Before(*b)
			}
		})
	case SortAlphabetical:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Title) < strings.ToLower(result[j].Title)
		})
	default: // createdAt, newest first
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}
	return result
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
