package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"task-reminder/internal/analytics"
	"task-reminder/internal/config"
	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
	"task-reminder/internal/repository"
)

const (
	readyAttempts = 10
	readyInterval = 100 * time.Millisecond
	streakWindow  = 365
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title       string
	Description string
	Type        model.TaskType
	DueDate     string // YYYY-MM-DD
	DueTime     string // HH:MM, empty for all-day
	IsRecurring bool
	Pattern     model.RecurrencePattern
	Interval    int
	Priority    model.Priority
	Category    string // resolved by name, created on first use
	CategoryID  *string
}

// DashboardMetrics summarizes today's workload.
type DashboardMetrics struct {
	TodayTotal     int
	TodayCompleted int
	CompletionRate int // completed/total*100, rounded
	OverdueCount   int
	Streak         int
}

// SettingsSource yields the user settings consumed by orchestration.
type SettingsSource interface {
	Settings() (config.UserSettings, error)
}

// TaskService is the orchestration façade: task CRUD, completion recording,
// dashboard metrics, and analytics access.
type TaskService struct {
	tasks       TaskStore
	completions CompletionStore
	categories  CategoryStore
	generation  *GenerationService
	settings    SettingsSource
}

func NewTaskService(tasks TaskStore, completions CompletionStore, categories CategoryStore, generation *GenerationService, settings SettingsSource) *TaskService {
	return &TaskService{
		tasks:       tasks,
		completions: completions,
		categories:  categories,
		generation:  generation,
		settings:    settings,
	}
}

// EnsureReady pings storage with bounded backoff before first use.
func (s *TaskService) EnsureReady(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < readyAttempts; attempt++ {
		if err = s.tasks.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyInterval):
		}
	}
	return fmt.Errorf("%w: %v", ErrNotReady, err)
}

// CreateTask creates a single task, or, for recurring input, materializes
// the whole instance window and returns its first instance.
func (s *TaskService) CreateTask(ctx context.Context, in TaskInput, now time.Time) (*model.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("create task: title is required")
	}
	if in.Type == "" {
		in.Type = model.TypeTask
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	if in.Category != "" {
		category, err := s.categories.GetOrCreate(ctx, in.Category)
		if err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		if category != nil {
			in.CategoryID = &category.ID
		}
	}

	if in.IsRecurring {
		settings, err := s.settings.Settings()
		if err != nil {
			return nil, fmt.Errorf("create task: %w", err)
		}
		return s.generation.CreateRecurringTask(ctx, in, settings.RecurringTaskGenerationDays, now)
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		DueDate:     in.DueDate,
		DueTime:     optional(in.DueTime),
		Priority:    in.Priority,
		CategoryID:  in.CategoryID,
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

// GetTasks lists tasks, optionally restricted to one YYYY-MM-DD due date.
func (s *TaskService) GetTasks(ctx context.Context, date string) ([]model.Task, error) {
	return s.tasks.List(ctx, date)
}

// GetOverdueTasks lists tasks past their due instant with no completion
// recorded today.
func (s *TaskService) GetOverdueTasks(ctx context.Context, now time.Time) ([]model.Task, error) {
	return s.tasks.ListOverdue(ctx, now)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return task, nil
}

// UpdateTask applies a partial field update.
func (s *TaskService) UpdateTask(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	task, err := s.tasks.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	return task, nil
}

// DeleteTask removes a task and its completions.
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return s.mapNotFound(err)
	}
	return nil
}

// CompleteTask records a completion for the task, at most once per calendar
// day.
func (s *TaskService) CompleteTask(ctx context.Context, id, notes string, now time.Time) (*model.TaskCompletion, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	done, err := s.completions.CompletedOnDate(ctx, task.ID, dateutil.DateString(now))
	if err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	if done {
		return nil, fmt.Errorf("complete task %q: %w", task.Title, ErrAlreadyCompleted)
	}
	completion := &model.TaskCompletion{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		CompletedAt: now,
		Notes:       notes,
	}
	if err := s.completions.Create(ctx, completion); err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return completion, nil
}

// GetDashboardMetrics computes today's counts, the overdue count, and the
// current streak.
func (s *TaskService) GetDashboardMetrics(ctx context.Context, now time.Time) (DashboardMetrics, error) {
	var m DashboardMetrics
	today := dateutil.DateString(now)

	tasks, err := s.tasks.List(ctx, today)
	if err != nil {
		return m, fmt.Errorf("dashboard metrics: %w", err)
	}
	m.TodayTotal = len(tasks)
	for _, t := range tasks {
		done, err := s.completions.CompletedOnDate(ctx, t.ID, today)
		if err != nil {
			return m, fmt.Errorf("dashboard metrics: %w", err)
		}
		if done {
			m.TodayCompleted++
		}
	}
	if m.TodayTotal > 0 {
		m.CompletionRate = int(math.Round(float64(m.TodayCompleted) / float64(m.TodayTotal) * 100))
	}

	overdue, err := s.tasks.ListOverdue(ctx, now)
	if err != nil {
		return m, fmt.Errorf("dashboard metrics: %w", err)
	}
	m.OverdueCount = len(overdue)

	streak, err := s.streak(ctx, now)
	if err != nil {
		return m, fmt.Errorf("dashboard metrics: %w", err)
	}
	m.Streak = streak
	return m, nil
}

// streak walks backward from today, up to a year. Days without scheduled
// tasks are skipped; a day with tasks extends the streak only when its
// completion count matches its task count, and otherwise ends the walk.
func (s *TaskService) streak(ctx context.Context, now time.Time) (int, error) {
	streak := 0
	for i := 0; i < streakWindow; i++ {
		date := dateutil.DateString(now.AddDate(0, 0, -i))
		total, err := s.tasks.CountByDueDate(ctx, date)
		if err != nil {
			return 0, err
		}
		if total == 0 {
			continue
		}
		done, err := s.completions.CountOnDate(ctx, date)
		if err != nil {
			return 0, err
		}
		if done != total {
			break
		}
		streak++
	}
	return streak, nil
}

// AnalyzeTask returns the lateness analysis for every completion of a task,
// oldest first.
func (s *TaskService) AnalyzeTask(ctx context.Context, id string) ([]analytics.CompletionAnalysis, error) {
	task, err := s.tasks.GetWithCompletions(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err)
	}
	out := make([]analytics.CompletionAnalysis, 0, len(task.Completions))
	for _, c := range task.Completions {
		out = append(out, analytics.AnalyzeCompletion(*task, c))
	}
	return out, nil
}

// StatsInRange aggregates completion stats over an inclusive date range.
func (s *TaskService) StatsInRange(ctx context.Context, start, end string) (analytics.CompletionStats, error) {
	completions, err := s.completions.ListInRange(ctx, start, end)
	if err != nil {
		return analytics.CompletionStats{}, fmt.Errorf("completion stats: %w", err)
	}
	tasks, err := s.tasks.List(ctx, "")
	if err != nil {
		return analytics.CompletionStats{}, fmt.Errorf("completion stats: %w", err)
	}
	return analytics.AnalyzeStats(tasks, completions), nil
}

// Categories lists every category.
func (s *TaskService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

// ReconcileInstances runs the startup generation sweep using the configured
// horizon.
func (s *TaskService) ReconcileInstances(ctx context.Context, now time.Time) error {
	settings, err := s.settings.Settings()
	if err != nil {
		return fmt.Errorf("reconcile instances: %w", err)
	}
	return s.generation.GenerateMissingInstances(ctx, settings.RecurringTaskGenerationDays, now)
}

func (s *TaskService) mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
