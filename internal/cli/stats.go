package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"task-reminder/internal/dateutil"
)

var statsFlags struct {
	from string
	to   string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Completion statistics over a date range (default: last 30 days)",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		now := time.Now()
		from, to := statsFlags.from, statsFlags.to
		if to == "" {
			to = dateutil.DateString(now)
		}
		if from == "" {
			from = dateutil.DateString(now.AddDate(0, 0, -30))
		}

		stats, err := app.svc.StatsInRange(cmd.Context(), from, to)
		if err != nil {
			return err
		}

		fmt.Printf("Completions %s .. %s\n", from, to)
		fmt.Printf("  total:    %d\n", stats.TotalCompletions)
		fmt.Printf("  on time:  %d (%.1f%%)\n", stats.OnTimeCount, stats.OnTimePercentage)
		fmt.Printf("  late:     %d\n", stats.LateCount)
		if stats.LateCount > 0 {
			fmt.Printf("  avg late: %.1f hours\n", stats.AverageHoursLate)
			fmt.Printf("  common lateness (hours): %v\n", stats.MostCommonLateHours)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFlags.from, "from", "", "range start YYYY-MM-DD")
	statsCmd.Flags().StringVar(&statsFlags.to, "to", "", "range end YYYY-MM-DD")
	rootCmd.AddCommand(statsCmd)
}
