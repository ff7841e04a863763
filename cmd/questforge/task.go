package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/orchestrators/tasks"
)

var taskDifficulty string
var taskDeadline string

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage your personal tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		input := &tasks.AddTaskInput{
			Title:      args[0],
			Difficulty: entities.Difficulty(taskDifficulty),
		}
		if taskDeadline != "" {
			deadline, err := time.Parse(time.RFC3339, taskDeadline)
			if err != nil {
				return fmt.Errorf("invalid deadline (want RFC 3339, e.g. 2026-01-02T15:00:00Z): %w", err)
			}
			input.Deadline = &deadline
		}

		out, err := a.tasks.AddTask(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s: %q (%s)\n", out.Task.ID, out.Task.Title, out.Task.Difficulty)
		return nil
	}),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Complete a task and collect the reward",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.tasks.CompleteTask(ctx, &tasks.CompleteTaskInput{TaskID: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Done! +%d coins, +%d XP",
			out.Reward.Coins+out.Reward.BonusCoins, out.Reward.Exp)
		if out.Reward.LevelsGained > 0 {
			fmt.Printf(" -> level %d", out.User.Level)
		}
		fmt.Println()
		return nil
	}),
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <task-id>",
	Short: "Delete a task without reward",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		_, err := a.tasks.DeleteTask(ctx, &tasks.DeleteTaskInput{TaskID: args[0]})
		if err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	}),
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your tasks",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		out, err := a.tasks.ListTasks(ctx, &tasks.ListTasksInput{})
		if err != nil {
			return err
		}
		if len(out.Tasks) == 0 {
			fmt.Println("No tasks. Add one with `questforge task add`.")
			return nil
		}
		for _, t := range out.Tasks {
			mark := " "
			if t.Completed {
				mark = "x"
			}
			line := fmt.Sprintf("[%s] %s  %q (%s)", mark, t.ID, t.Title, t.Difficulty)
			if t.Deadline != nil {
				line += "  due " + t.Deadline.Format(time.RFC3339)
			}
			if t.IsPenalty {
				line += "  [penalty]"
			}
			fmt.Println(line)
		}
		return nil
	}),
}

func init() {
	taskAddCmd.Flags().StringVar(&taskDifficulty, "difficulty", "easy", "easy, medium, or hard")
	taskAddCmd.Flags().StringVar(&taskDeadline, "deadline", "", "optional RFC 3339 deadline")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskRmCmd)
	taskCmd.AddCommand(taskListCmd)
}
