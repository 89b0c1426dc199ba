package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
)

// CompletionRepository stores task completion records.
type CompletionRepository struct {
	db *gorm.DB
}

func NewCompletionRepository(db *gorm.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

func (r *CompletionRepository) Create(ctx context.Context, c *model.TaskCompletion) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create completion: %w", err)
	}
	return nil
}

// List returns completions, optionally narrowed to one task and/or to those
// recorded on one YYYY-MM-DD calendar date.
func (r *CompletionRepository) List(ctx context.Context, taskID, date string) ([]model.TaskCompletion, error) {
	q := r.db.WithContext(ctx)
	if taskID != "" {
		q = q.Where("task_id = ?", taskID)
	}
	if date != "" {
		start, end, err := dayBounds(date)
		if err != nil {
			return nil, err
		}
		q = q.Where("completed_at >= ? AND completed_at < ?", start, end)
	}
	var completions []model.TaskCompletion
	if err := q.Order("completed_at ASC").Find(&completions).Error; err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return completions, nil
}

// CompletedOnDate reports whether the task already has a completion recorded
// on the given calendar date.
func (r *CompletionRepository) CompletedOnDate(ctx context.Context, taskID, date string) (bool, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return false, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(&model.TaskCompletion{}).
		Where("task_id = ? AND completed_at >= ? AND completed_at < ?", taskID, start, end).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check completion: %w", err)
	}
	return n > 0, nil
}

// CountOnDate counts every completion recorded on the given calendar date.
func (r *CompletionRepository) CountOnDate(ctx context.Context, date string) (int64, error) {
	start, end, err := dayBounds(date)
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.WithContext(ctx).Model(&model.TaskCompletion{}).
		Where("completed_at >= ? AND completed_at < ?", start, end).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count completions: %w", err)
	}
	return n, nil
}

// ListInRange returns completions recorded between the start and end dates,
// both inclusive, in YYYY-MM-DD form.
func (r *CompletionRepository) ListInRange(ctx context.Context, start, end string) ([]model.TaskCompletion, error) {
	from, _, err := dayBounds(start)
	if err != nil {
		return nil, err
	}
	_, to, err := dayBounds(end)
	if err != nil {
		return nil, err
	}
	var completions []model.TaskCompletion
	err = r.db.WithContext(ctx).
		Where("completed_at >= ? AND completed_at < ?", from, to).
		Order("completed_at ASC").
		Find(&completions).Error
	if err != nil {
		return nil, fmt.Errorf("list completions in range: %w", err)
	}
	return completions, nil
}

func dayBounds(date string) (time.Time, time.Time, error) {
	start, err := dateutil.ParseDate(date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}
