package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Regenerate missing recurring-task instances once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.svc.ReconcileInstances(cmd.Context(), time.Now()); err != nil {
			return err
		}
		fmt.Println("Sweep complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
