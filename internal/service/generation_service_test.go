package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-reminder/internal/model"
)

func recurringInput(pattern model.RecurrencePattern, interval int, dueDate string) TaskInput {
	return TaskInput{
		Title:       "Water plants",
		Type:        model.TypeChore,
		DueDate:     dueDate,
		IsRecurring: true,
		Pattern:     pattern,
		Interval:    interval,
		Priority:    model.PriorityMedium,
	}
}

func localDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.Local)
}

func TestCreateRecurringTaskDailyWindow(t *testing.T) {
	store := newMemStore()
	seriesStore := newMemSeriesStore()
	gen := NewGenerationService(store, seriesStore)
	ctx := context.Background()
	now := localDate(2024, 1, 1)

	first, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 3, now)
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	if first.DueDate != "2024-01-01" {
		t.Fatalf("first instance due %s, want 2024-01-01", first.DueDate)
	}

	tasks, _ := store.List(ctx, "")
	want := []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}
	if len(tasks) != len(want) {
		t.Fatalf("created %d instances, want %d", len(tasks), len(want))
	}
	for i, task := range tasks {
		if task.DueDate != want[i] {
			t.Fatalf("instance %d due %s, want %s", i, task.DueDate, want[i])
		}
		if task.IsRecurring || task.RecurrencePattern != "" {
			t.Fatalf("instance %d carries recurrence metadata: %+v", i, task)
		}
		if task.SeriesID == nil || *task.SeriesID == "" {
			t.Fatalf("instance %d missing series link", i)
		}
	}

	series, _ := seriesStore.List(ctx)
	if len(series) != 1 {
		t.Fatalf("created %d series, want 1", len(series))
	}
	if series[0].LastGeneratedDate != "2024-01-04" {
		t.Fatalf("checkpoint = %q, want 2024-01-04", series[0].LastGeneratedDate)
	}
}

func TestCreateRecurringTaskPartialFailure(t *testing.T) {
	store := newMemStore()
	fail := errors.New("disk full")
	store.createErr = func(task *model.Task) error {
		if task.DueDate == "2024-01-02" {
			return fail
		}
		return nil
	}
	gen := NewGenerationService(store, newMemSeriesStore())
	ctx := context.Background()

	first, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 3, localDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("partial failure must not abort the run: %v", err)
	}
	if first.DueDate != "2024-01-01" {
		t.Fatalf("first instance due %s, want 2024-01-01", first.DueDate)
	}
	tasks, _ := store.List(ctx, "")
	if len(tasks) != 3 {
		t.Fatalf("created %d instances, want 3 (one skipped)", len(tasks))
	}
	for _, task := range tasks {
		if task.DueDate == "2024-01-02" {
			t.Fatal("failed instance still persisted")
		}
	}
}

func TestCreateRecurringTaskAllFail(t *testing.T) {
	store := newMemStore()
	store.createErr = func(*model.Task) error { return errors.New("down") }
	gen := NewGenerationService(store, newMemSeriesStore())

	_, err := gen.CreateRecurringTask(context.Background(), recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 3, localDate(2024, 1, 1))
	if !errors.Is(err, ErrNoInstances) {
		t.Fatalf("want ErrNoInstances, got %v", err)
	}
}

func TestCreateRecurringTaskValidation(t *testing.T) {
	gen := NewGenerationService(newMemStore(), newMemSeriesStore())
	ctx := context.Background()
	now := localDate(2024, 1, 1)

	if _, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceCustom, 0, "2024-01-01"), 3, now); err == nil {
		t.Fatal("custom pattern without interval accepted")
	}
	if _, err := gen.CreateRecurringTask(ctx, recurringInput("hourly", 0, "2024-01-01"), 3, now); err == nil {
		t.Fatal("unknown pattern accepted")
	}
	if _, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceDaily, 0, "someday"), 3, now); err == nil {
		t.Fatal("unparseable due date accepted")
	}
}

func TestCreateRecurringTaskSafetyCeiling(t *testing.T) {
	store := newMemStore()
	gen := NewGenerationService(store, newMemSeriesStore())

	// A daily series with a two-year horizon request still stops at the
	// per-run ceiling.
	_, err := gen.CreateRecurringTask(context.Background(), recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 365, localDate(2024, 1, 1))
	if err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	tasks, _ := store.List(context.Background(), "")
	if len(tasks) != 365 {
		t.Fatalf("created %d instances, want ceiling of 365", len(tasks))
	}
}

func TestGenerateMissingInstancesSkipsCovered(t *testing.T) {
	store := newMemStore()
	seriesStore := newMemSeriesStore()
	gen := NewGenerationService(store, seriesStore)
	ctx := context.Background()

	if _, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 5, localDate(2024, 1, 1)); err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	before, _ := store.List(ctx, "")

	// Tomorrow's instance exists, so the sweep must be a no-op.
	if err := gen.GenerateMissingInstances(ctx, 5, localDate(2024, 1, 1)); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	after, _ := store.List(ctx, "")
	if len(after) != len(before) {
		t.Fatalf("sweep created %d extra instances", len(after)-len(before))
	}
}

func TestGenerateMissingInstancesRegeneratesWindow(t *testing.T) {
	store := newMemStore()
	seriesStore := newMemSeriesStore()
	gen := NewGenerationService(store, seriesStore)
	ctx := context.Background()

	if _, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceDaily, 0, "2024-01-01"), 3, localDate(2024, 1, 1)); err != nil {
		t.Fatalf("create recurring: %v", err)
	}

	// Days later the window is exhausted: instances exist through 01-04.
	now := localDate(2024, 1, 10)
	if err := gen.GenerateMissingInstances(ctx, 3, now); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	tasks, _ := store.List(ctx, "")
	byDate := make(map[string]int)
	for _, task := range tasks {
		byDate[task.DueDate]++
	}
	// Regeneration starts strictly after today: nothing on the 10th or
	// earlier beyond the original window, no duplicates anywhere.
	for _, date := range []string{"2024-01-05", "2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10"} {
		if byDate[date] != 0 {
			t.Fatalf("sweep backfilled %s", date)
		}
	}
	for _, date := range []string{"2024-01-11", "2024-01-12", "2024-01-13"} {
		if byDate[date] != 1 {
			t.Fatalf("date %s has %d instances, want 1", date, byDate[date])
		}
	}
	for date, n := range byDate {
		if n > 1 {
			t.Fatalf("duplicate instances on %s", date)
		}
	}
}

func TestGenerateMissingInstancesRespectsCheckpoint(t *testing.T) {
	store := newMemStore()
	seriesStore := newMemSeriesStore()
	gen := NewGenerationService(store, seriesStore)
	ctx := context.Background()

	// Weekly series generated through 01-15. On 01-09 no instance is due
	// tomorrow; the checkpoint makes the sweep resume after 01-15 instead of
	// re-creating existing dates.
	if _, err := gen.CreateRecurringTask(ctx, recurringInput(model.RecurrenceWeekly, 0, "2024-01-01"), 14, localDate(2024, 1, 1)); err != nil {
		t.Fatalf("create recurring: %v", err)
	}
	before, _ := store.List(ctx, "")
	if len(before) != 3 { // 01-01, 01-08, 01-15
		t.Fatalf("initial window = %d instances, want 3", len(before))
	}

	if err := gen.GenerateMissingInstances(ctx, 14, localDate(2024, 1, 9)); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	after, _ := store.List(ctx, "")
	byDate := make(map[string]int)
	for _, task := range after {
		byDate[task.DueDate]++
	}
	for date, n := range byDate {
		if n > 1 {
			t.Fatalf("duplicate instances on %s", date)
		}
	}
	// Exactly one new instance, 01-22, inside the refreshed horizon.
	if len(after) != len(before)+1 || byDate["2024-01-22"] != 1 {
		t.Fatalf("sweep produced %d instances, want one new on 2024-01-22", len(after)-len(before))
	}
}
