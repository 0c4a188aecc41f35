package models

import (
	"strings"
	"time"
)

// Group categorizes birthdays for display. Birthdays reference groups by ID
// only; a group owns none of them.
type Group struct {
	ID        string    `firestore:"-" json:"id"`
	UserID    string    `firestore:"userId" json:"userId"`
	Name      string    `firestore:"name" json:"name"`
	Color     string    `firestore:"color" json:"color"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// GroupInput carries the user-editable fields of a new group.
type GroupInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate rejects the input before any write is attempted.
func (in GroupInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}
