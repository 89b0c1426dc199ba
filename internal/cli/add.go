package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-reminder/internal/dateutil"
	"task-reminder/internal/model"
	"task-reminder/internal/service"
)

var addFlags struct {
	description string
	taskType    string
	due         string
	dueTime     string
	priority    string
	category    string
	recurrence  string
	interval    int
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a task, or a recurring series with its instance window",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		now := time.Now()
		in := service.TaskInput{
			Title:       strings.Join(args, " "),
			Description: addFlags.description,
			Type:        model.TaskType(addFlags.taskType),
			DueDate:     addFlags.due,
			DueTime:     addFlags.dueTime,
			Priority:    model.Priority(addFlags.priority),
			Category:    addFlags.category,
		}
		if in.DueDate == "" {
			in.DueDate = dateutil.DateString(now)
		}
		if addFlags.recurrence != "" {
			in.IsRecurring = true
			in.Pattern = model.RecurrencePattern(addFlags.recurrence)
			in.Interval = addFlags.interval
		}

		task, err := app.svc.CreateTask(cmd.Context(), in, now)
		if err != nil {
			return err
		}
		if in.IsRecurring {
			fmt.Printf("Created recurring series %q, first instance %s (%s)\n", task.Title, task.DueDate, task.ID)
			return nil
		}
		fmt.Printf("Created task %q due %s (%s)\n", task.Title, task.DueDate, task.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addFlags.description, "description", "d", "", "task description")
	addCmd.Flags().StringVar(&addFlags.taskType, "type", string(model.TypeTask), "task type: appointment, chore, or task")
	addCmd.Flags().StringVar(&addFlags.due, "due", "", "due date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addFlags.dueTime, "time", "", "due time HH:MM (default all-day)")
	addCmd.Flags().StringVarP(&addFlags.priority, "priority", "p", string(model.PriorityMedium), "priority: low, medium, or high")
	addCmd.Flags().StringVarP(&addFlags.category, "category", "c", "", "category name, created on first use")
	addCmd.Flags().StringVarP(&addFlags.recurrence, "recur", "r", "", "recurrence pattern: daily, weekly, biweekly, monthly, quarterly, annually, custom")
	addCmd.Flags().IntVar(&addFlags.interval, "interval", 0, "day interval for the custom pattern")
	rootCmd.AddCommand(addCmd)
}
