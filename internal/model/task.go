package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidType     = errors.New("model: invalid task type")
	ErrInvalidPriority = errors.New("model: invalid task priority")
)

type TaskType string

const (
	TypeAppointment TaskType = "appointment"
	TypeChore       TaskType = "chore"
	TypeTask        TaskType = "task"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TypeAppointment, TypeChore, TypeTask:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a single dated reminder. Instances materialized from a recurring
// series are ordinary tasks: IsRecurring is false and the recurrence fields
// are empty, with SeriesID linking them back to their Series.
type Task struct {
	ID                 string `gorm:"primaryKey"`
	Title              string
	Description        string
	Type               TaskType
	DueDate            string  `gorm:"index"` // YYYY-MM-DD
	DueTime            *string // HH:MM, nil for all-day
	IsRecurring        bool    `gorm:"default:false"`
	RecurrencePattern  RecurrencePattern
	RecurrenceInterval int
	Priority           Priority
	CategoryID         *string `gorm:"index"`
	SeriesID           *string `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Completions        []TaskCompletion `gorm:"foreignKey:TaskID"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.DueDate == "" {
		return errors.New("model: task due date is required")
	}
	if !t.IsRecurring && t.RecurrencePattern != "" {
		return errors.New("model: recurrence pattern set on non-recurring task")
	}
	if t.RecurrencePattern != "" && !t.RecurrencePattern.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, t.RecurrencePattern)
	}
	return nil
}

// TaskCompletion records that a task was marked done. Immutable once written;
// the orchestration layer allows at most one per task per calendar day.
type TaskCompletion struct {
	ID          string `gorm:"primaryKey"`
	TaskID      string `gorm:"index"`
	CompletedAt time.Time
	Notes       string
	CreatedAt   time.Time
}
