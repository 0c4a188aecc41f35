package models

import (
	"reflect"
	"testing"
)

func TestTodoInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      TodoInput
		wantErr string
	}{
		{
			name: "valid",
			in:   TodoInput{Title: "Buy milk", Priority: PriorityMedium},
		},
		{
			name:    "empty title",
			in:      TodoInput{Title: "", Priority: PriorityMedium},
			wantErr: "title",
		},
		{
			name:    "whitespace title",
			in:      TodoInput{Title: "   ", Priority: PriorityMedium},
			wantErr: "title",
		},
		{
			name:    "unknown priority",
			in:      TodoInput{Title: "Buy milk", Priority: "critical"},
			wantErr: "priority",
		},
		{
			name:    "missing priority",
			in:      TodoInput{Title: "Buy milk"},
			wantErr: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			checkValidationError(t, err, tt.wantErr)
		})
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Rank(%s) = %d not below Rank(%s) = %d", order[i-1], order[i-1].Rank(), order[i], order[i].Rank())
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil input", nil, []string{}},
		{"lowercases", []string{"Work", "URGENT"}, []string{"work", "urgent"}},
		{"dedupes case-insensitively", []string{"home", "Home", "HOME"}, []string{"home"}},
		{"drops empty and blank", []string{"", "  ", "a"}, []string{"a"}},
		{"keeps first occurrence order", []string{"b", "a", "B"}, []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if got == nil {
				t.Fatal("NormalizeTags returned nil")
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// checkValidationError asserts that err is nil when field is empty, and a
// ValidationError on the given field otherwise.
func checkValidationError(t *testing.T, err error, field string) {
	t.Helper()
	if field == "" {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected validation error on %q, got nil", field)
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if ve.Field != field {
		t.Errorf("error on field %q, want %q", ve.Field, field)
	}
}
