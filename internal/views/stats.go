package views

import (
	"time"

	"github.com/pexkit/pexkit/internal/models"
)

// TodoStats summarizes a todo list for the dashboard cards.
type TodoStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// ComputeTodoStats counts the whole raw list, not the filtered view.
func ComputeTodoStats(todos []models.Todo, now time.Time) TodoStats {
	dayStart := startOfDay(now)
	stats := TodoStats{Total: len(todos)}
	for _, t := range todos {
		if t.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if t.DueDate != nil && t.DueDate.Before(dayStart) {
			stats.Overdue++
		}
	}
	return stats
}

// BirthdayStats summarizes upcoming birthdays. Unlike the display buckets
// the counts overlap: a birthday today is also counted in its week and
// month.
type BirthdayStats struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// ComputeBirthdayStats counts next occurrences relative to now. The week
// starts on Sunday.
func ComputeBirthdayStats(birthdays []models.Birthday, now time.Time) BirthdayStats {
	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := BirthdayStats{Total: len(birthdays)}
	for _, b := range birthdays {
		next := NextOccurrence(b, now)
		if next.Equal(dayStart) {
			stats.Today++
		}
		if !next.Before(weekStart) && next.Before(weekEnd) {
			stats.ThisWeek++
		}
		if next.Year() == now.Year() && next.Month() == now.Month() {
			stats.ThisMonth++
		}
	}
	return stats
}
