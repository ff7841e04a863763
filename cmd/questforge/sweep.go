package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/orchestrators/tasks"
)

var sweepWatch bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Apply deadline penalties for overdue tasks",
	Long: `Checks every user's tasks for missed deadlines and applies the HP/EXP
penalty plus a remedial task for each. With --watch, keeps sweeping on
an interval until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		out, err := a.tasks.Sweep(ctx, &tasks.SweepInput{})
		if err != nil {
			return err
		}
		fmt.Printf("Swept: %d penalties, %d remedial tasks.\n",
			out.PenaltiesApplied, out.PenaltyTasksAdded)
		a.printNotifications()

		if !sweepWatch {
			return nil
		}

		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("Stopping sweeper...")
			cancel()
		}()

		fmt.Printf("Sweeping every %s. Ctrl-C to stop.\n", a.cfg.SweepInterval)
		a.tasks.RunSweeper(watchCtx, a.cfg.SweepInterval)
		return nil
	},
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepWatch, "watch", false, "keep sweeping on an interval")
}
