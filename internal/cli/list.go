package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
)

var listFlags struct {
	date     string
	today    bool
	tomorrow bool
	overdue  bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		now := time.Now()
		var tasks []model.Task
		switch {
		case listFlags.overdue:
			tasks, err = app.svc.GetOverdueTasks(cmd.Context(), now)
		case listFlags.today:
			tasks, err = app.svc.GetTasks(cmd.Context(), dateutil.DateString(now))
		case listFlags.tomorrow:
			tasks, err = app.svc.GetTasks(cmd.Context(), dateutil.DateString(now.AddDate(0, 0, 1)))
		default:
			tasks, err = app.svc.GetTasks(cmd.Context(), listFlags.date)
		}
		if err != nil {
			return err
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, t := range tasks {
			fmt.Println(formatTaskLine(t, now))
		}
		return nil
	},
}

func formatTaskLine(t model.Task, now time.Time) string {
	when := t.DueDate
	if day, err := dateutil.ParseDate(t.DueDate); err == nil {
		when = dateutil.FormatDate(day)
	}
	if t.DueTime != nil && *t.DueTime != "" {
		if clock, err := time.Parse(dateutil.TimeLayout, *t.DueTime); err == nil {
			when += " " + dateutil.FormatTime(clock)
		}
	}
	line := fmt.Sprintf("%s  [%s/%s] %s, due %s", t.ID, t.Type, t.Priority, t.Title, when)
	if dateutil.IsPastDue(t.DueDate, t.DueTime, now) {
		line += "  (overdue)"
	}
	return line
}

func init() {
	listCmd.Flags().StringVar(&listFlags.date, "date", "", "only tasks due on this YYYY-MM-DD date")
	listCmd.Flags().BoolVar(&listFlags.today, "today", false, "only tasks due today")
	listCmd.Flags().BoolVar(&listFlags.tomorrow, "tomorrow", false, "only tasks due tomorrow")
	listCmd.Flags().BoolVar(&listFlags.overdue, "overdue", false, "only overdue tasks")
	rootCmd.AddCommand(listCmd)
}
