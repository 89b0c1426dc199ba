// Package analytics derives lateness metrics from tasks and their
// completions. Everything here is computed on demand from its inputs and
// never persisted.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
)

// CompletionAnalysis describes how one completion relates to its task's due
// instant.
type CompletionAnalysis struct {
	WasCompletedLate bool
	HoursLate        float64
	DaysLate         int
	CompletedAt      time.Time
	DueAt            time.Time
}

// CompletionStats aggregates a set of completions.
type CompletionStats struct {
	TotalCompletions    int
	OnTimeCount         int
	LateCount           int
	AverageHoursLate    float64
	OnTimePercentage    float64
	MostCommonLateHours []int
}

// AnalyzeCompletion resolves the task's due instant (end of day when no due
// time is set) and measures the completion against it. A completion is late
// only when it lands strictly after the due instant.
func AnalyzeCompletion(task model.Task, completion model.TaskCompletion) CompletionAnalysis {
	due, err := dateutil.DueInstant(task.DueDate, task.DueTime)
	out := CompletionAnalysis{
		CompletedAt: completion.CompletedAt,
		DueAt:       due,
	}
	if err != nil {
		// Malformed due dates fall through as a zero due instant.
		return out
	}
	if completion.CompletedAt.After(due) {
		out.WasCompletedLate = true
		out.HoursLate = completion.CompletedAt.Sub(due).Hours()
		out.DaysLate = int(math.Floor(out.HoursLate / 24))
	}
	return out
}

// AnalyzeStats aggregates completions against their tasks. Completions whose
// task is not in the given set are skipped. MostCommonLateHours holds up to
// the three most frequent rounded late-hour values, most frequent first,
// ties kept in first-seen order.
func AnalyzeStats(tasks []model.Task, completions []model.TaskCompletion) CompletionStats {
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var stats CompletionStats
	var lateHoursSum float64
	bucketCounts := make(map[int]int)
	var bucketOrder []int

	for _, c := range completions {
		task, ok := byID[c.TaskID]
		if !ok {
			continue
		}
		a := AnalyzeCompletion(task, c)
		stats.TotalCompletions++
		if !a.WasCompletedLate {
			stats.OnTimeCount++
			continue
		}
		stats.LateCount++
		lateHoursSum += a.HoursLate
		bucket := int(math.Round(a.HoursLate))
		if _, seen := bucketCounts[bucket]; !seen {
			bucketOrder = append(bucketOrder, bucket)
		}
		bucketCounts[bucket]++
	}

	if stats.TotalCompletions > 0 {
		stats.OnTimePercentage = float64(stats.OnTimeCount) / float64(stats.TotalCompletions) * 100
	}
	if stats.LateCount > 0 {
		stats.AverageHoursLate = lateHoursSum / float64(stats.LateCount)
	}

	sort.SliceStable(bucketOrder, func(i, j int) bool {
		return bucketCounts[bucketOrder[i]] > bucketCounts[bucketOrder[j]]
	})
	if len(bucketOrder) > 3 {
		bucketOrder = bucketOrder[:3]
	}
	stats.MostCommonLateHours = bucketOrder
	return stats
}

// DescribeLateness renders an analysis for display. Hours and minutes round
// half away from zero.
func DescribeLateness(a CompletionAnalysis) string {
	if !a.WasCompletedLate {
		return "Completed on time"
	}
	switch {
	case a.DaysLate >= 1:
		rem := int(math.Round(a.HoursLate - float64(a.DaysLate)*24))
		if a.DaysLate == 1 && rem >= 1 {
			return fmt.Sprintf("1 day and %s late", plural(rem, "hour"))
		}
		return fmt.Sprintf("%s late", plural(a.DaysLate, "day"))
	case a.HoursLate >= 1:
		return fmt.Sprintf("%s late", plural(int(math.Round(a.HoursLate)), "hour"))
	default:
		return fmt.Sprintf("%s late", plural(int(math.Round(a.HoursLate*60)), "minute"))
	}
}

// IsSignificantlyLate applies the lateness threshold: two hours for tasks
// with a specific due time, a full day for all-day tasks.
func IsSignificantlyLate(task model.Task, a CompletionAnalysis) bool {
	if !a.WasCompletedLate {
		return false
	}
	if task.DueTime != nil && *task.DueTime != "" {
		return a.HoursLate >= 2
	}
	return a.HoursLate >= 24
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
