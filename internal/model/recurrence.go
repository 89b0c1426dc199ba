package model

import (
	"errors"
	"time"
)

var ErrInvalidPattern = errors.New("model: invalid recurrence pattern")

type RecurrencePattern string

const (
	RecurrenceDaily     RecurrencePattern = "daily"
	RecurrenceWeekly    RecurrencePattern = "weekly"
	RecurrenceBiweekly  RecurrencePattern = "biweekly"
	RecurrenceMonthly   RecurrencePattern = "monthly"
	RecurrenceQuarterly RecurrencePattern = "quarterly"
	RecurrenceAnnually  RecurrencePattern = "annually"
	RecurrenceCustom    RecurrencePattern = "custom"
)

func (p RecurrencePattern) IsValid() bool {
	switch p {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceBiweekly,
		RecurrenceMonthly, RecurrenceQuarterly, RecurrenceAnnually,
		RecurrenceCustom:
		return true
	default:
		return false
	}
}

// NextOccurrence advances date by one step of the pattern. Month and year
// steps use calendar arithmetic, so month-end dates roll over naturally
// (Jan 31 + one month lands in early March). Custom patterns step by
// interval days; a custom pattern without a positive interval, like an
// unrecognized pattern, returns the date unchanged.
func NextOccurrence(date time.Time, pattern RecurrencePattern, interval int) time.Time {
	switch pattern {
	case RecurrenceDaily:
		return date.AddDate(0, 0, 1)
	case RecurrenceWeekly:
		return date.AddDate(0, 0, 7)
	case RecurrenceBiweekly:
		return date.AddDate(0, 0, 14)
	case RecurrenceMonthly:
		return date.AddDate(0, 1, 0)
	case RecurrenceQuarterly:
		return date.AddDate(0, 3, 0)
	case RecurrenceAnnually:
		return date.AddDate(1, 0, 0)
	case RecurrenceCustom:
		if interval <= 0 {
			return date
		}
		return date.AddDate(0, 0, interval)
	default:
		return date
	}
}
