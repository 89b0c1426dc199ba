package model

import "time"

// Series is the persisted definition of a recurring task. Materialized
// instances reference it through Task.SeriesID; the definition itself is
// never stored as a task row. LastGeneratedDate is a checkpoint advanced as
// instances are written, so interrupted generation can resume without
// duplicating dates.
type Series struct {
	ID                string `gorm:"primaryKey"`
	Title             string
	Description       string
	Type              TaskType
	DueTime           *string // HH:MM, nil for all-day
	Pattern           RecurrencePattern
	Interval          int
	Priority          Priority
	CategoryID        *string
	StartDate         string // YYYY-MM-DD
	LastGeneratedDate string // YYYY-MM-DD, empty until first instance lands
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Tasks             []Task `gorm:"foreignKey:SeriesID"`
}
