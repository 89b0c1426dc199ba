package cli

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"task-reminder/internal/service"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reconciliation sweep now and keep it scheduled daily",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer app.Close()

		// Startup sweep failures are logged, never fatal.
		if err := app.svc.ReconcileInstances(cmd.Context(), time.Now()); err != nil {
			log.Printf("sweep: %v", err)
		}

		scheduler := service.NewSchedulerService(time.Local)
		if _, err := scheduler.ScheduleDaily(app.cfg.SweepTime, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := app.svc.ReconcileInstances(jobCtx, time.Now()); err != nil {
				log.Printf("sweep: %v", err)
			}
		}); err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()

		log.Printf("Task reminder running, daily sweep at %s.", app.cfg.SweepTime)
		<-cmd.Context().Done()
		log.Println("Shutdown complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
