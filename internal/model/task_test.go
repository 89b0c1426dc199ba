package model

import (
	"errors"
	"testing"
)

func validTask() Task {
	return Task{
		ID:       "task-1",
		Title:    "Water plants",
		Type:     TypeChore,
		DueDate:  "2024-03-10",
		Priority: PriorityLow,
	}
}

func TestTaskValidate(t *testing.T) {
	if err := validTask().Validate(); err != nil {
		t.Fatalf("valid task rejected: %v", err)
	}

	task := validTask()
	task.Title = "  "
	if err := task.Validate(); err == nil {
		t.Fatal("blank title accepted")
	}

	task = validTask()
	task.Type = "meeting"
	if err := task.Validate(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("want ErrInvalidType, got %v", err)
	}

	task = validTask()
	task.Priority = "urgent"
	if err := task.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("want ErrInvalidPriority, got %v", err)
	}

	task = validTask()
	task.DueDate = ""
	if err := task.Validate(); err == nil {
		t.Fatal("missing due date accepted")
	}
}

func TestTaskValidateRecurrenceInvariant(t *testing.T) {
	// A non-recurring row must not carry a pattern; materialized instances
	// rely on this.
	task := validTask()
	task.RecurrencePattern = RecurrenceDaily
	if err := task.Validate(); err == nil {
		t.Fatal("pattern on non-recurring task accepted")
	}

	task.IsRecurring = true
	if err := task.Validate(); err != nil {
		t.Fatalf("recurring task rejected: %v", err)
	}

	task.RecurrencePattern = "fortnightly"
	if err := task.Validate(); !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("want ErrInvalidPattern, got %v", err)
	}
}
