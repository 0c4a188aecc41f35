package models

import (
	"strings"
	"time"
)

// Priority classifies how urgently a todo needs attention.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Rank orders priorities for sorting. Lower rank sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

// Todo represents a todo item. CompletedAt is set if and only if Completed
// is true.
type Todo struct {
	ID          string     `firestore:"-" json:"id"`
	UserID      string     `firestore:"userId" json:"userId"`
	Title       string     `firestore:"title" json:"title"`
	Description string     `firestore:"description,omitempty" json:"description,omitempty"`
	Completed   bool       `firestore:"completed" json:"completed"`
	Priority    Priority   `firestore:"priority" json:"priority"`
	DueDate     *time.Time `firestore:"dueDate,omitempty" json:"dueDate,omitempty"`
	Tags        []string   `firestore:"tags" json:"tags"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `firestore:"updatedAt" json:"updatedAt"`
	CompletedAt *time.Time `firestore:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// TodoInput carries the user-editable fields of a new todo.
type TodoInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

// Validate rejects the input before any write is attempted.
func (in TodoInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if !in.Priority.Valid() {
		return &ValidationError{Field: "priority", Reason: "must be one of low, medium, high, urgent"}
	}
	return nil
}

// NormalizeTags lowercases tags and drops empty entries and case-insensitive
// duplicates, keeping first-occurrence order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
