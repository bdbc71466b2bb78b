// Package period computes calendar windows, date gaps and recurrence frequencies.
// All calculations are done in UTC.
package period

import (
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

const day = 24 * time.Hour

// Range is an inclusive [Start, End] window.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// StartOfDayUTC returns midnight UTC of t's UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns 23:59:59.999 UTC of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(day - time.Millisecond)
}

// StartOfMonth returns midnight UTC of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns 23:59:59.999 UTC of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, 0).Add(-time.Millisecond)
}

// Dates returns the window from the start of the period containing ref through the end
// of ref's day. Windows are "period to date", not full calendar periods.
func Dates(p domain.Periodicity, ref time.Time) (Range, error) {
	u := ref.UTC()
	var start time.Time
	switch p {
	case domain.Daily:
		start = StartOfDayUTC(u)
	case domain.Weekly:
		sinceMonday := (int(u.Weekday()) + 6) % 7
		start = StartOfDayUTC(u).AddDate(0, 0, -sinceMonday)
	case domain.Monthly:
		start = StartOfMonth(u)
	case domain.Quarterly:
		firstMonth := ((int(u.Month())-1)/3)*3 + 1
		start = time.Date(u.Year(), time.Month(firstMonth), 1, 0, 0, 0, 0, time.UTC)
	case domain.HalfYearly:
		firstMonth := time.January
		if u.Month() > time.June {
			firstMonth = time.July
		}
		start = time.Date(u.Year(), firstMonth, 1, 0, 0, 0, 0, time.UTC)
	case domain.Yearly:
		start = time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return Range{}, apperrors.NewFieldValidationError("Period", "period", fmt.Sprintf("unsupported period %q", p))
	}
	return Range{Start: start, End: EndOfDay(u)}, nil
}

// Label renders a display label for the period containing ref, e.g. "Q1 2025".
func Label(p domain.Periodicity, ref time.Time) string {
	u := ref.UTC()
	switch p {
	case domain.Daily:
		return u.Format("Jan 2, 2006")
	case domain.Weekly:
		r, _ := Dates(p, u)
		return "Week of " + r.Start.Format("Jan 2, 2006")
	case domain.Monthly:
		return u.Format("January 2006")
	case domain.Quarterly:
		return fmt.Sprintf("Q%d %d", (int(u.Month())-1)/3+1, u.Year())
	case domain.HalfYearly:
		half := 1
		if u.Month() > time.June {
			half = 2
		}
		return fmt.Sprintf("H%d %d", half, u.Year())
	case domain.Yearly:
		return fmt.Sprintf("%d", u.Year())
	default:
		return string(p)
	}
}

// DaysBetween is the ceiling of the day difference from -> to. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}

// WeeksBetween is the number of whole weeks from -> to.
func WeeksBetween(from, to time.Time) int {
	return int(math.Floor(float64(to.Sub(from)) / float64(7*day)))
}

// MonthsBetween counts whole elapsed calendar months from -> to. The month-field
// difference is reduced by one when to's day-of-month has not reached from's.
func MonthsBetween(from, to time.Time) int {
	f, t := from.UTC(), to.UTC()
	months := (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
	if t.Day() < f.Day() {
		months--
	}
	return months
}
