package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
)

// maxInstancesPerRun caps one generation sweep regardless of the configured
// horizon.
const maxInstancesPerRun = 365

// GenerationService materializes recurring task definitions into bounded
// runs of concrete, non-recurring task instances. The horizon length is
// passed in by the caller; the service never reads settings itself.
type GenerationService struct {
	tasks  TaskStore
	series SeriesStore
}

func NewGenerationService(tasks TaskStore, series SeriesStore) *GenerationService {
	return &GenerationService{tasks: tasks, series: series}
}

// CreateRecurringTask persists a series definition and materializes its
// instances from the definition's due date through today plus horizonDays.
// Individual instance failures are logged and skipped; the call fails only
// when no instance could be created. Returns the first created instance.
func (g *GenerationService) CreateRecurringTask(ctx context.Context, in TaskInput, horizonDays int, now time.Time) (*model.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("create recurring task: title is required")
	}
	if !in.Pattern.IsValid() {
		return nil, fmt.Errorf("create recurring task: %w: %q", model.ErrInvalidPattern, in.Pattern)
	}
	if in.Pattern == model.RecurrenceCustom && in.Interval <= 0 {
		return nil, fmt.Errorf("create recurring task: custom pattern requires a positive interval")
	}
	start, err := dateutil.ParseDate(in.DueDate)
	if err != nil {
		return nil, fmt.Errorf("create recurring task: %w", err)
	}

	series := &model.Series{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		DueTime:     optional(in.DueTime),
		Pattern:     in.Pattern,
		Interval:    in.Interval,
		Priority:    in.Priority,
		CategoryID:  in.CategoryID,
		StartDate:   in.DueDate,
	}
	if err := g.series.Create(ctx, series); err != nil {
		return nil, fmt.Errorf("create recurring task: %w", err)
	}

	end := startOfDay(now).AddDate(0, 0, horizonDays)
	first, created := g.generateRun(ctx, series, start, end)
	if created == 0 {
		return nil, fmt.Errorf("create recurring task %q: %w", in.Title, ErrNoInstances)
	}
	return first, nil
}

// GenerateMissingInstances is the reconciliation sweep. For every series
// without an instance due tomorrow it regenerates the forward window,
// resuming strictly after both today and the series checkpoint so existing
// dates are never re-created. Per-series failures are logged and skipped.
func (g *GenerationService) GenerateMissingInstances(ctx context.Context, horizonDays int, now time.Time) error {
	seriesList, err := g.series.List(ctx)
	if err != nil {
		return fmt.Errorf("generate missing instances: %w", err)
	}

	today := startOfDay(now)
	tomorrow := dateutil.DateString(today.AddDate(0, 0, 1))
	end := today.AddDate(0, 0, horizonDays)

	for i := range seriesList {
		s := &seriesList[i]
		n, err := g.tasks.CountBySeriesOnDate(ctx, s.ID, tomorrow)
		if err != nil {
			log.Printf("generation: series %s: %v", s.ID, err)
			continue
		}
		if n > 0 {
			continue
		}

		cursor, ok := g.resumeCursor(s, today)
		if !ok {
			log.Printf("generation: series %s: pattern %q does not advance, skipping", s.ID, s.Pattern)
			continue
		}
		if cursor.After(end) {
			continue
		}
		if _, created := g.generateRun(ctx, s, cursor, end); created == 0 {
			log.Printf("generation: series %s: no instances created", s.ID)
		}
	}
	return nil
}

// resumeCursor returns the first occurrence strictly after today and after
// the series checkpoint. The second result is false when the pattern never
// advances.
func (g *GenerationService) resumeCursor(s *model.Series, today time.Time) (time.Time, bool) {
	cursor, err := dateutil.ParseDate(s.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	limit := today
	if s.LastGeneratedDate != "" {
		if cp, err := dateutil.ParseDate(s.LastGeneratedDate); err == nil && cp.After(limit) {
			limit = cp
		}
	}
	for !cursor.After(limit) {
		next := model.NextOccurrence(cursor, s.Pattern, s.Interval)
		if !next.After(cursor) {
			return time.Time{}, false
		}
		cursor = next
	}
	return cursor, true
}

// generateRun walks the recurrence from cursor through end, persisting one
// instance per occurrence. Write failures are logged and skipped so one bad
// insert does not abort the rest of the run.
func (g *GenerationService) generateRun(ctx context.Context, series *model.Series, cursor, end time.Time) (*model.Task, int) {
	var first *model.Task
	created := 0
	for i := 0; !cursor.After(end) && i < maxInstancesPerRun; i++ {
		task := instanceFor(series, cursor)
		if err := g.tasks.Create(ctx, task); err != nil {
			log.Printf("generation: instance %s of series %s: %v", task.DueDate, series.ID, err)
		} else {
			created++
			if first == nil {
				first = task
			}
			series.LastGeneratedDate = task.DueDate
			if err := g.series.UpdateCheckpoint(ctx, series.ID, task.DueDate); err != nil {
				log.Printf("generation: checkpoint series %s: %v", series.ID, err)
			}
		}
		next := model.NextOccurrence(cursor, series.Pattern, series.Interval)
		if !next.After(cursor) {
			break
		}
		cursor = next
	}
	return first, created
}

func instanceFor(series *model.Series, due time.Time) *model.Task {
	var dueTime *string
	if series.DueTime != nil {
		t := *series.DueTime
		dueTime = &t
	}
	return &model.Task{
		ID:          uuid.NewString(),
		Title:       series.Title,
		Description: series.Description,
		Type:        series.Type,
		DueDate:     dateutil.DateString(due),
		DueTime:     dueTime,
		IsRecurring: false,
		Priority:    series.Priority,
		CategoryID:  series.CategoryID,
		SeriesID:    &series.ID,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
