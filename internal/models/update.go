package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Field is a tri-state value for partial updates. A zero Field leaves the
// stored value untouched; Set replaces it; Clear removes it. This keeps
// "don't touch" and "clear" distinct, instead of overloading absence.
type Field[T any] struct {
	state fieldState
	value T
}

type fieldState int

const (
	fieldUnchanged fieldState = iota
	fieldSet
	fieldClear
)

// Set returns a Field that replaces the stored value with v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// Clear returns a Field that removes the stored value.
func Clear[T any]() Field[T] {
	return Field[T]{state: fieldClear}
}

// IsSet reports whether the field carries a replacement value.
func (f Field[T]) IsSet() bool { return f.state == fieldSet }

// IsClear reports whether the field requests an explicit clear.
func (f Field[T]) IsClear() bool { return f.state == fieldClear }

// IsUnchanged reports whether the field leaves the stored value untouched.
func (f Field[T]) IsUnchanged() bool { return f.state == fieldUnchanged }

// Value returns the replacement value. Meaningful only when IsSet.
func (f Field[T]) Value() T { return f.value }

var jsonNull = []byte("null")

// UnmarshalJSON maps the wire convention onto the tri-state: an absent key
// never reaches this method and stays Unchanged, an explicit null means
// Clear, anything else means Set.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*f = Field[T]{state: fieldClear}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Field[T]{state: fieldSet, value: v}
	return nil
}

// TodoUpdate lists the todo fields a partial update may touch. Required
// fields accept Set only; optional fields may also be cleared.
type TodoUpdate struct {
	Title       Field[string]    `json:"title"`
	Description Field[string]    `json:"description"`
	Completed   Field[bool]      `json:"completed"`
	Priority    Field[Priority]  `json:"priority"`
	DueDate     Field[time.Time] `json:"dueDate"`
	Tags        Field[[]string]  `json:"tags"`
}

// Validate rejects the update before any write is attempted.
func (u TodoUpdate) Validate() error {
	if u.Title.IsClear() {
		return &ValidationError{Field: "title", Reason: "cannot be cleared"}
	}
	if u.Title.IsSet() && len(u.Title.Value()) == 0 {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if u.Completed.IsClear() {
		return &ValidationError{Field: "completed", Reason: "cannot be cleared"}
	}
	if u.Priority.IsClear() {
		return &ValidationError{Field: "priority", Reason: "cannot be cleared"}
	}
	if u.Priority.IsSet() && !u.Priority.Value().Valid() {
		return &ValidationError{Field: "priority", Reason: "must be one of low, medium, high, urgent"}
	}
	return nil
}

// BirthdayUpdate lists the birthday fields a partial update may touch.
type BirthdayUpdate struct {
	Name       Field[string]   `json:"name"`
	BirthMonth Field[int]      `json:"birthMonth"`
	BirthDay   Field[int]      `json:"birthDay"`
	BirthYear  Field[int]      `json:"birthYear"`
	Groups     Field[[]string] `json:"groups"`
	Notes      Field[string]   `json:"notes"`
}

// Validate rejects the update before any write is attempted. The month/day
// cross check only runs when both fields are part of the update; a lone day
// is bounded by the longest month.
func (u BirthdayUpdate) Validate() error {
	if u.Name.IsClear() {
		return &ValidationError{Field: "name", Reason: "cannot be cleared"}
	}
	if u.Name.IsSet() && len(u.Name.Value()) == 0 {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if u.BirthMonth.IsClear() || u.BirthDay.IsClear() {
		return &ValidationError{Field: "birthMonth", Reason: "date cannot be cleared"}
	}
	if u.BirthMonth.IsSet() {
		m := u.BirthMonth.Value()
		if m < 1 || m > 12 {
			return &ValidationError{Field: "birthMonth", Reason: "must be between 1 and 12"}
		}
		if u.BirthDay.IsSet() {
			if d := u.BirthDay.Value(); d < 1 || d > daysInMonth[m] {
				return &ValidationError{Field: "birthDay", Reason: "not a valid day for that month"}
			}
		}
	} else if u.BirthDay.IsSet() {
		if d := u.BirthDay.Value(); d < 1 || d > 31 {
			return &ValidationError{Field: "birthDay", Reason: "must be between 1 and 31"}
		}
	}
	if u.BirthYear.IsSet() {
		if y := u.BirthYear.Value(); y < minBirthYear || y > time.Now().Year() {
			return &ValidationError{Field: "birthYear", Reason: "out of range"}
		}
	}
	return nil
}

// GroupUpdate lists the group fields a partial update may touch.
type GroupUpdate struct {
	Name  Field[string] `json:"name"`
	Color Field[string] `json:"color"`
}

// Validate rejects the update before any write is attempted.
func (u GroupUpdate) Validate() error {
	if u.Name.IsClear() {
		return &ValidationError{Field: "name", Reason: "cannot be cleared"}
	}
	if u.Name.IsSet() && len(u.Name.Value()) == 0 {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if u.Color.IsClear() {
		return &ValidationError{Field: "color", Reason: "cannot be cleared"}
	}
	return nil
}
