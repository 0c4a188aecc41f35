package models

import (
	"strings"
	"time"
)

// minBirthYear is the oldest accepted birth year.
const minBirthYear = 1900

// daysInMonth holds month lengths for a non-leap reference year, so
// February 29 is never a valid stored birthday.
var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Birthday represents a tracked birthday. Groups holds weak references into
// Group IDs: deleting a group never cascades here, dangling entries are
// simply skipped on display.
type Birthday struct {
	ID         string    `firestore:"-" json:"id"`
	UserID     string    `firestore:"userId" json:"userId"`
	Name       string    `firestore:"name" json:"name"`
	BirthMonth int       `firestore:"birthMonth" json:"birthMonth"`
	BirthDay   int       `firestore:"birthDay" json:"birthDay"`
	BirthYear  int       `firestore:"birthYear,omitempty" json:"birthYear,omitempty"`
	Groups     []string  `firestore:"groups,omitempty" json:"groups,omitempty"`
	Notes      string    `firestore:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// BirthdayInput carries the user-editable fields of a new birthday.
// A zero BirthYear means the year is unknown.
type BirthdayInput struct {
	Name       string   `json:"name"`
	BirthMonth int      `json:"birthMonth"`
	BirthDay   int      `json:"birthDay"`
	BirthYear  int      `json:"birthYear"`
	Groups     []string `json:"groups"`
	Notes      string   `json:"notes"`
}

// Validate rejects the input before any write is attempted.
func (in BirthdayInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if in.BirthMonth < 1 || in.BirthMonth > 12 {
		return &ValidationError{Field: "birthMonth", Reason: "must be between 1 and 12"}
	}
	if in.BirthDay < 1 || in.BirthDay > daysInMonth[in.BirthMonth] {
		return &ValidationError{Field: "birthDay", Reason: "not a valid day for that month"}
	}
	if in.BirthYear != 0 {
		if in.BirthYear < minBirthYear || in.BirthYear > time.Now().Year() {
			return &ValidationError{Field: "birthYear", Reason: "out of range"}
		}
	}
	return nil
}
