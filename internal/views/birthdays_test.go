package views

import (
	"reflect"
	"testing"
	"time"

	"github.com/pexkit/pexkit/internal/models"
)

func newBirthday(id, name string, month, day, year int) models.Birthday {
	return models.Birthday{
		ID:         id,
		UserID:     "user-1",
		Name:       name,
		BirthMonth: month,
		BirthDay:   day,
		BirthYear:  year,
		Groups:     []string{},
	}
}

func names(birthdays []models.Birthday) []string {
	out := make([]string, len(birthdays))
	for i, b := range birthdays {
		out[i] = b.Name
	}
	return out
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		month int
		day   int
		want  time.Time
	}{
		{
			name:  "later this year",
			now:   time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
			month: 6, day: 15,
			want: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "already passed wraps to next year",
			now:   time.Date(2024, 12, 30, 9, 0, 0, 0, time.UTC),
			month: 1, day: 5,
			want: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "today stays this year",
			now:   time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC),
			month: 3, day: 10,
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "yesterday wraps",
			now:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			month: 3, day: 9,
			want: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBirthday("b1", "x", tt.month, tt.day, 0)
			got := NextOccurrence(b, tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC)

	tests := []struct {
		month, day int
		want       int
	}{
		{3, 10, 0},
		{3, 11, 1},
		{3, 17, 7},
		{3, 9, 364}, // wraps to next year
	}

	for _, tt := range tests {
		b := newBirthday("b1", "x", tt.month, tt.day, 0)
		if got := DaysUntil(b, now); got != tt.want {
			t.Errorf("DaysUntil(%d/%d) = %d, want %d", tt.month, tt.day, got, tt.want)
		}
	}
}

func TestGroupBirthdaysPartition(t *testing.T) {
	// 2024-03-10 is a Sunday, so the calendar week runs Mar 10 through Mar 16.
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	birthdays := []models.Birthday{
		newBirthday("b1", "today", 3, 10, 1990),
		newBirthday("b2", "saturday", 3, 16, 0),
		newBirthday("b3", "late march", 3, 25, 0),
		newBirthday("b4", "june", 6, 1, 0),
		newBirthday("b5", "wednesday", 3, 13, 0),
		newBirthday("b6", "next february", 2, 20, 0),
	}

	buckets := GroupBirthdays(birthdays, now)

	if got := names(buckets.Today); !reflect.DeepEqual(got, []string{"today"}) {
		t.Errorf("Today = %v", got)
	}
	if got := names(buckets.ThisWeek); !reflect.DeepEqual(got, []string{"wednesday", "saturday"}) {
		t.Errorf("ThisWeek = %v, want proximity order", got)
	}
	if got := names(buckets.ThisMonth); !reflect.DeepEqual(got, []string{"late march"}) {
		t.Errorf("ThisMonth = %v", got)
	}
	if got := names(buckets.Upcoming); !reflect.DeepEqual(got, []string{"june", "next february"}) {
		t.Errorf("Upcoming = %v, want proximity order", got)
	}

	total := len(buckets.Today) + len(buckets.ThisWeek) + len(buckets.ThisMonth) + len(buckets.Upcoming)
	if total != len(birthdays) {
		t.Errorf("buckets hold %d birthdays, want %d", total, len(birthdays))
	}
}

func TestGroupBirthdaysTodayWinsOverWeek(t *testing.T) {
	// A birthday today is also inside the week and the month; the buckets
	// must place it only in Today.
	now := time.Date(2024, 3, 13, 8, 0, 0, 0, time.UTC)
	buckets := GroupBirthdays([]models.Birthday{newBirthday("b1", "x", 3, 13, 0)}, now)

	if len(buckets.Today) != 1 || len(buckets.ThisWeek) != 0 || len(buckets.ThisMonth) != 0 {
		t.Errorf("birthday today landed in the wrong bucket: %+v", buckets)
	}
}

func TestGroupBirthdaysMonthExcludesPassedDates(t *testing.T) {
	// March 5 has already passed on March 10; its next occurrence is next
	// March, which belongs in Upcoming rather than ThisMonth.
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	buckets := GroupBirthdays([]models.Birthday{newBirthday("b1", "passed", 3, 5, 0)}, now)

	if len(buckets.ThisMonth) != 0 {
		t.Errorf("passed date counted in ThisMonth")
	}
	if got := names(buckets.Upcoming); !reflect.DeepEqual(got, []string{"passed"}) {
		t.Errorf("Upcoming = %v", got)
	}
}

func TestSearchBirthdays(t *testing.T) {
	birthdays := []models.Birthday{
		{ID: "a", Name: "Alice Johnson"},
		{ID: "b", Name: "Bob", Notes: "loves HIKING"},
		{ID: "c", Name: "Carol"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Alice Johnson", "Bob", "Carol"}},
		{"alice", []string{"Alice Johnson"}},
		{"hiking", []string{"Bob"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		got := names(SearchBirthdays(birthdays, tt.query))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SearchBirthdays(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	// Birthday today: turning 34 today.
	if age, ok := Age(newBirthday("b1", "x", 3, 10, 1990), now); !ok || age != 34 {
		t.Errorf("Age(today) = %d, %v, want 34, true", age, ok)
	}
	// Birthday passed this year: next occurrence is next year.
	if age, ok := Age(newBirthday("b2", "y", 1, 5, 1990), now); !ok || age != 35 {
		t.Errorf("Age(passed) = %d, %v, want 35, true", age, ok)
	}
	// No birth year recorded.
	if _, ok := Age(newBirthday("b3", "z", 3, 10, 0), now); ok {
		t.Errorf("Age without birth year reported ok")
	}
}

func TestDaysUntilText(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		month, day int
		want       string
	}{
		{3, 10, "Today!"},
		{3, 11, "Tomorrow"},
		{3, 15, "In 5 days"},
		{3, 20, "In 1 weeks"},
		{3, 31, "In 3 weeks"},
		{4, 20, "In 1 months"},
		{9, 10, "In 6 months"},
	}

	for _, tt := range tests {
		b := newBirthday("b1", "x", tt.month, tt.day, 0)
		if got := DaysUntilText(b, now); got != tt.want {
			t.Errorf("DaysUntilText(%d/%d) = %q, want %q", tt.month, tt.day, got, tt.want)
		}
	}
}

func TestResolveGroups(t *testing.T) {
	groups := []models.Group{
		{ID: "g1", Name: "Family"},
		{ID: "g2", Name: "Friends"},
		{ID: "g3", Name: "Colleagues"},
	}

	b := newBirthday("b1", "x", 1, 1, 0)
	b.Groups = []string{"g3", "g1", "deleted"}

	got := ResolveGroups(b, groups)
	want := []string{"Family", "Colleagues"}
	gotNames := make([]string, len(got))
	for i, g := range got {
		gotNames[i] = g.Name
	}
	if !reflect.DeepEqual(gotNames, want) {
		t.Errorf("ResolveGroups = %v, want %v (groups order, dangling refs dropped)", gotNames, want)
	}
}

func TestComputeBirthdayStatsOverlap(t *testing.T) {
	// 2024-03-10 is a Sunday. A birthday today counts toward today, this
	// week, and this month at once.
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	birthdays := []models.Birthday{
		newBirthday("b1", "today", 3, 10, 0),
		newBirthday("b2", "friday", 3, 15, 0),
		newBirthday("b3", "late march", 3, 28, 0),
		newBirthday("b4", "december", 12, 1, 0),
	}

	got := ComputeBirthdayStats(birthdays, now)
	want := BirthdayStats{Total: 4, Today: 1, ThisWeek: 2, ThisMonth: 3}
	if got != want {
		t.Errorf("ComputeBirthdayStats = %+v, want %+v", got, want)
	}
}
