// Package dateutil holds the pure calendar helpers shared by the recurrence,
// analytics, and orchestration layers. Due dates travel as YYYY-MM-DD strings
// and due times as 24-hour HH:MM strings; both sort correctly as text, which
// is also how they are compared in SQL.
package dateutil

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DateString serializes the calendar date of t as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// TimeString serializes the clock time of t as 24-hour HH:MM.
func TimeString(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseDate reads a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a date for display, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a clock time in 12-hour form with a zero-padded minute,
// e.g. "9:05 AM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// DueInstant resolves a due date plus optional HH:MM time to the moment the
// task falls due. All-day tasks are due at the very end of their date,
// 23:59:59.999 local time.
func DueInstant(dueDate string, dueTime *string) (time.Time, error) {
	day, err := ParseDate(dueDate)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	if dueTime == nil || *dueTime == "" {
		return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), time.Local), nil
	}
	clock, err := time.Parse(TimeLayout, *dueTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", *dueTime, err)
	}
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// IsPastDue reports whether the due instant is strictly before now.
// Unparseable inputs are never past due.
func IsPastDue(dueDate string, dueTime *string, now time.Time) bool {
	due, err := DueInstant(dueDate, dueTime)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// IsToday reports calendar-day equality with now in local time.
func IsToday(t, now time.Time) bool {
	return sameDay(t, now)
}

// IsTomorrow reports whether t falls on the calendar day after now.
func IsTomorrow(t, now time.Time) bool {
	return sameDay(t, now.AddDate(0, 0, 1))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
