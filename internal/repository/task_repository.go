package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
)

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Ping verifies the underlying connection is usable.
func (r *TaskRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("ping db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// List returns tasks due on the given YYYY-MM-DD date, or every task when
// date is empty. Timed tasks sort before all-day tasks on the same date.
func (r *TaskRepository) List(ctx context.Context, date string) ([]model.Task, error) {
	q := r.db.WithContext(ctx)
	if date != "" {
		q = q.Where("due_date = ?", date)
	}
	var tasks []model.Task
	if err := q.Order("due_date ASC, due_time ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial field update and returns the refreshed row.
func (r *TaskRepository) Update(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task and every completion recorded against it.
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", id).Delete(&model.TaskCompletion{}).Error; err != nil {
		return fmt.Errorf("delete task completions: %w", err)
	}
	res := db.Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) GetWithCompletions(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Preload("Completions", func(db *gorm.DB) *gorm.DB {
		return db.Order("completed_at ASC")
	}).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find task with completions: %w", err)
	}
	return &task, nil
}

// ListOverdue returns tasks whose due instant is before now and which have no
// completion recorded today. Due dates on or before today are fetched by
// string comparison, then filtered against the exact due instant.
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	today := dateutil.DateString(now)
	dayStart, err := dateutil.ParseDate(today)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	var tasks []model.Task
	err = r.db.WithContext(ctx).
		Where("due_date <= ?", today).
		Where("id NOT IN (?)", r.db.Model(&model.TaskCompletion{}).
			Select("task_id").
			Where("completed_at >= ? AND completed_at < ?", dayStart, dayEnd)).
		Order("due_date ASC, due_time ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}

	overdue := tasks[:0]
	for _, t := range tasks {
		if dateutil.IsPastDue(t.DueDate, t.DueTime, now) {
			overdue = append(overdue, t)
		}
	}
	return overdue, nil
}

func (r *TaskRepository) CountByDueDate(ctx context.Context, date string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Where("due_date = ?", date).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks by due date: %w", err)
	}
	return n, nil
}

// CountBySeriesOnDate reports how many instances of a series are due on the
// given date.
func (r *TaskRepository) CountBySeriesOnDate(ctx context.Context, seriesID, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("series_id = ? AND due_date = ?", seriesID, date).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count series instances: %w", err)
	}
	return n, nil
}
