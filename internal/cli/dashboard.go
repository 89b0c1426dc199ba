package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's counts, overdue tasks, and the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		now := time.Now()
		m, err := app.svc.GetDashboardMetrics(cmd.Context(), now)
		if err != nil {
			return err
		}

		fmt.Printf("Today: %d/%d done (%d%%)\n", m.TodayCompleted, m.TodayTotal, m.CompletionRate)
		fmt.Printf("Overdue: %d\n", m.OverdueCount)
		fmt.Printf("Streak: %d day(s)\n", m.Streak)

		if m.OverdueCount > 0 {
			overdue, err := app.svc.GetOverdueTasks(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Println()
			for _, t := range overdue {
				fmt.Println(formatTaskLine(t, now))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
