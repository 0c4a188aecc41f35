package views

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pexkit/pexkit/internal/models"
)

// ViewMode selects how the birthday page presents its records.
type ViewMode string

const (
	ModeList     ViewMode = "list"
	ModeCalendar ViewMode = "calendar"
)

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	return m == ModeList || m == ModeCalendar
}

// Buckets partitions birthdays by proximity of their next occurrence. Every
// input birthday lands in exactly one bucket.
type Buckets struct {
	Today     []models.Birthday `json:"today"`
	ThisWeek  []models.Birthday `json:"thisWeek"`
	ThisMonth []models.Birthday `json:"thisMonth"`
	Upcoming  []models.Birthday `json:"upcoming"`
}

// NextOccurrence returns the next calendar date the birthday lands on, at
// midnight in now's location: this year's date unless it has already passed,
// in which case next year's. A birthday falling on today counts as this
// year's.
func NextOccurrence(b models.Birthday, now time.Time) time.Time {
	next := time.Date(now.Year(), time.Month(b.BirthMonth), b.BirthDay, 0, 0, 0, 0, now.Location())
	if next.Before(startOfDay(now)) {
		next = time.Date(now.Year()+1, time.Month(b.BirthMonth), b.BirthDay, 0, 0, 0, 0, now.Location())
	}
	return next
}

// DaysUntil counts whole calendar days from now's date to the birthday's
// next occurrence. Zero means the birthday is today.
func DaysUntil(b models.Birthday, now time.Time) int {
	return daysBetween(startOfDay(now), NextOccurrence(b, now))
}

// daysBetween counts calendar days between two midnights in the same
// location. Rounding absorbs DST offsets.
func daysBetween(from, to time.Time) int {
	return int(math.Round(to.Sub(from).Hours() / 24))
}

// GroupBirthdays buckets birthdays by their next occurrence relative to now.
// The today check wins over week and month membership; the calendar week
// starts on Sunday. Week, month, and upcoming buckets are sorted ascending
// by days until the birthday; the today bucket keeps match order.
func GroupBirthdays(birthdays []models.Birthday, now time.Time) Buckets {
	dayStart := startOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -int(dayStart.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)

	var buckets Buckets
	for _, b := range birthdays {
		next := NextOccurrence(b, now)
		switch {
		case next.Equal(dayStart):
			buckets.Today = append(buckets.Today, b)
		case !next.Before(weekStart) && next.Before(weekEnd):
			buckets.ThisWeek = append(buckets.ThisWeek, b)
		case next.Year() == now.Year() && next.Month() == now.Month():
			buckets.ThisMonth = append(buckets.ThisMonth, b)
		default:
			buckets.Upcoming = append(buckets.Upcoming, b)
		}
	}

	byProximity := func(list []models.Birthday) {
		sort.SliceStable(list, func(i, j int) bool {
			return DaysUntil(list[i], now) < DaysUntil(list[j], now)
		})
	}
	byProximity(buckets.ThisWeek)
	byProximity(buckets.ThisMonth)
	byProximity(buckets.Upcoming)

	return buckets
}

// SearchBirthdays keeps the birthdays whose name or notes contain the query,
// case-insensitively. An empty query keeps everything.
func SearchBirthdays(birthdays []models.Birthday, query string) []models.Birthday {
	if query == "" {
		return birthdays
	}
	q := strings.ToLower(query)

	result := make([]models.Birthday, 0, len(birthdays))
	for _, b := range birthdays {
		if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.Notes), q) {
			result = append(result, b)
		}
	}
	return result
}

// Age returns the age the person turns on their next birthday. The second
// return is false when the birth year is unknown.
func Age(b models.Birthday, now time.Time) (int, bool) {
	if b.BirthYear == 0 {
		return 0, false
	}
	return NextOccurrence(b, now).Year() - b.BirthYear, true
}

// DaysUntilText renders the countdown the way the birthday cards show it.
func DaysUntilText(b models.Birthday, now time.Time) string {
	d := DaysUntil(b, now)
	switch {
	case d == 0:
		return "Today!"
	case d == 1:
		return "Tomorrow"
	case d < 7:
		return fmt.Sprintf("In %d days", d)
	case d < 30:
		return fmt.Sprintf("In %d weeks", d/7)
	case d < 365:
		return fmt.Sprintf("In %d months", d/30)
	default:
		return NextOccurrence(b, now).Format("Jan 2, 2006")
	}
}

// ResolveGroups maps a birthday's group references onto the known groups,
// keeping the groups' order. Dangling references are skipped.
func ResolveGroups(b models.Birthday, groups []models.Group) []models.Group {
	refs := make(map[string]struct{}, len(b.Groups))
	for _, id := range b.Groups {
		refs[id] = struct{}{}
	}
	var result []models.Group
	for _, g := range groups {
		if _, ok := refs[g.ID]; ok {
			result = append(result, g)
		}
	}
	return result
}
