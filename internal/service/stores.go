package service

import (
	"context"
	"time"

	"task-reminder/internal/model"
)

// Store interfaces cover the slice of the persistence layer each service
// consumes. The repository package satisfies them; tests swap in fakes.

type TaskStore interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, date string) ([]model.Task, error)
	Update(ctx context.Context, id string, fields map[string]any) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	GetWithCompletions(ctx context.Context, id string) (*model.Task, error)
	ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error)
	CountByDueDate(ctx context.Context, date string) (int64, error)
	CountBySeriesOnDate(ctx context.Context, seriesID, date string) (int64, error)
}

type CompletionStore interface {
	Create(ctx context.Context, c *model.TaskCompletion) error
	CompletedOnDate(ctx context.Context, taskID, date string) (bool, error)
	CountOnDate(ctx context.Context, date string) (int64, error)
	ListInRange(ctx context.Context, start, end string) ([]model.TaskCompletion, error)
}

type SeriesStore interface {
	Create(ctx context.Context, s *model.Series) error
	List(ctx context.Context) ([]model.Series, error)
	UpdateCheckpoint(ctx context.Context, id, date string) error
}

type CategoryStore interface {
	GetOrCreate(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}
