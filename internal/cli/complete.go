package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-reminder/internal/analytics"
	"task-reminder/internal/service"
)

var completeNotes string

var completeCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task done (once per day)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		completion, err := app.svc.CompleteTask(cmd.Context(), args[0], completeNotes, time.Now())
		if err != nil {
			if errors.Is(err, service.ErrAlreadyCompleted) {
				return fmt.Errorf("this task is already completed today")
			}
			return err
		}

		task, err := app.svc.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		a := analytics.AnalyzeCompletion(*task, *completion)
		fmt.Printf("Completed %q. %s\n", task.Title, analytics.DescribeLateness(a))
		if analytics.IsSignificantlyLate(*task, a) {
			fmt.Println("Heads up: this one was significantly late.")
		}
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVarP(&completeNotes, "notes", "n", "", "completion notes")
	rootCmd.AddCommand(completeCmd)
}
