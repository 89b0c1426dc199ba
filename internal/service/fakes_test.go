package service

import (
	"context"
	"sort"
	"time"

	"task-reminder/internal/config"
	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
	"task-reminder/internal/repository"
)

// memStore is an in-memory TaskStore + CompletionStore for service tests.
type memStore struct {
	tasks       map[string]*model.Task
	taskOrder   []string
	completions []model.TaskCompletion

	pingFailures int
	createErr    func(t *model.Task) error
}

func newMemStore() *memStore {
	return &memStore{tasks: make(map[string]*model.Task)}
}

func (m *memStore) Ping(ctx context.Context) error {
	if m.pingFailures > 0 {
		m.pingFailures--
		return context.DeadlineExceeded
	}
	return nil
}

func (m *memStore) Create(ctx context.Context, task *model.Task) error {
	if m.createErr != nil {
		if err := m.createErr(task); err != nil {
			return err
		}
	}
	copied := *task
	m.tasks[task.ID] = &copied
	m.taskOrder = append(m.taskOrder, task.ID)
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*model.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *memStore) List(ctx context.Context, date string) ([]model.Task, error) {
	var out []model.Task
	for _, id := range m.taskOrder {
		t, ok := m.tasks[id]
		if !ok {
			continue
		}
		if date == "" || t.DueDate == date {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out, nil
}

func (m *memStore) Update(ctx context.Context, id string, fields map[string]any) (*model.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			task.Title = v.(string)
		case "description":
			task.Description = v.(string)
		case "due_date":
			task.DueDate = v.(string)
		case "priority":
			task.Priority = model.Priority(v.(string))
		}
	}
	copied := *task
	return &copied, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tasks, id)
	kept := m.completions[:0]
	for _, c := range m.completions {
		if c.TaskID != id {
			kept = append(kept, c)
		}
	}
	m.completions = kept
	return nil
}

func (m *memStore) GetWithCompletions(ctx context.Context, id string) (*model.Task, error) {
	task, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, c := range m.completions {
		if c.TaskID == id {
			task.Completions = append(task.Completions, c)
		}
	}
	return task, nil
}

func (m *memStore) ListOverdue(ctx context.Context, now time.Time) ([]model.Task, error) {
	today := dateutil.DateString(now)
	var out []model.Task
	for _, id := range m.taskOrder {
		t, ok := m.tasks[id]
		if !ok {
			continue
		}
		if !dateutil.IsPastDue(t.DueDate, t.DueTime, now) {
			continue
		}
		completedToday := false
		for _, c := range m.completions {
			if c.TaskID == t.ID && dateutil.DateString(c.CompletedAt) == today {
				completedToday = true
				break
			}
		}
		if !completedToday {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) CountByDueDate(ctx context.Context, date string) (int64, error) {
	var n int64
	for _, t := range m.tasks {
		if t.DueDate == date {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountBySeriesOnDate(ctx context.Context, seriesID, date string) (int64, error) {
	var n int64
	for _, t := range m.tasks {
		if t.SeriesID != nil && *t.SeriesID == seriesID && t.DueDate == date {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CreateCompletion(ctx context.Context, c *model.TaskCompletion) error {
	m.completions = append(m.completions, *c)
	return nil
}

// completionView adapts memStore to the CompletionStore interface (Create
// has a conflicting signature with the task side).
type completionView struct{ m *memStore }

func (v completionView) Create(ctx context.Context, c *model.TaskCompletion) error {
	return v.m.CreateCompletion(ctx, c)
}

func (v completionView) CompletedOnDate(ctx context.Context, taskID, date string) (bool, error) {
	for _, c := range v.m.completions {
		if c.TaskID == taskID && dateutil.DateString(c.CompletedAt) == date {
			return true, nil
		}
	}
	return false, nil
}

func (v completionView) CountOnDate(ctx context.Context, date string) (int64, error) {
	var n int64
	for _, c := range v.m.completions {
		if dateutil.DateString(c.CompletedAt) == date {
			n++
		}
	}
	return n, nil
}

func (v completionView) ListInRange(ctx context.Context, start, end string) ([]model.TaskCompletion, error) {
	var out []model.TaskCompletion
	for _, c := range v.m.completions {
		d := dateutil.DateString(c.CompletedAt)
		if d >= start && d <= end {
			out = append(out, c)
		}
	}
	return out, nil
}

type memSeriesStore struct {
	series    map[string]*model.Series
	order     []string
	createErr error
}

func newMemSeriesStore() *memSeriesStore {
	return &memSeriesStore{series: make(map[string]*model.Series)}
}

func (m *memSeriesStore) Create(ctx context.Context, s *model.Series) error {
	if m.createErr != nil {
		return m.createErr
	}
	copied := *s
	m.series[s.ID] = &copied
	m.order = append(m.order, s.ID)
	return nil
}

func (m *memSeriesStore) List(ctx context.Context) ([]model.Series, error) {
	var out []model.Series
	for _, id := range m.order {
		out = append(out, *m.series[id])
	}
	return out, nil
}

func (m *memSeriesStore) UpdateCheckpoint(ctx context.Context, id, date string) error {
	s, ok := m.series[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LastGeneratedDate = date
	return nil
}

type memCategoryStore struct {
	categories map[string]*model.Category
}

func newMemCategoryStore() *memCategoryStore {
	return &memCategoryStore{categories: make(map[string]*model.Category)}
}

func (m *memCategoryStore) GetOrCreate(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, nil
	}
	if c, ok := m.categories[name]; ok {
		return c, nil
	}
	c := &model.Category{ID: "cat-" + name, Name: name}
	m.categories[name] = c
	return c, nil
}

func (m *memCategoryStore) List(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range m.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fixedSettings struct {
	days int
}

func (f fixedSettings) Settings() (config.UserSettings, error) {
	return config.UserSettings{RecurringTaskGenerationDays: f.days, Theme: "system"}, nil
}
