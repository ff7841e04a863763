package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/orchestrators/account"
	"github.com/questforge/questforge/internal/orchestrators/dungeon"
	"github.com/questforge/questforge/internal/orchestrators/tasks"
)

var signupCmd = &cobra.Command{
	Use:   "signup <username> <password>",
	Short: "Create an account and log in",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.account.SignUp(ctx, &account.SignUpInput{
			Username: args[0],
			Password: args[1],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Welcome, %s! Level %d adventurer, %d coins.\n",
			out.User.Username, out.User.Level, out.User.Coins)
		return nil
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in as an existing user",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		_, err := a.account.LogIn(ctx, &account.LogInInput{
			Username: args[0],
			Password: args[1],
		})
		return err
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the current session",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		out, err := a.account.LogOut(ctx, &account.LogOutInput{})
		if err != nil {
			return err
		}
		fmt.Printf("Logged out %s.\n", out.Username)
		return nil
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the logged-in character",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		cur, err := a.account.GetCurrentUser(ctx, &account.GetCurrentUserInput{})
		if err != nil {
			return err
		}
		u := cur.User

		fmt.Printf("%s  (level %d)\n", u.Username, u.Level)
		fmt.Printf("  HP      %d/%d\n", u.HP, u.MaxHP)
		fmt.Printf("  EXP     %d/100\n", u.Exp)
		fmt.Printf("  Coins   %d\n", u.Coins)
		fmt.Printf("  Attack  %d\n", u.Attack)
		fmt.Printf("  Defense %d\n", u.Defense)
		if len(u.Inventory) > 0 {
			fmt.Printf("  Gear    %v\n", u.Inventory)
		}

		if list, err := a.tasks.ListTasks(ctx, &tasks.ListTasksInput{}); err == nil {
			open := 0
			for _, t := range list.Tasks {
				if !t.Completed {
					open++
				}
			}
			fmt.Printf("  Tasks   %d open, %d total\n", open, len(list.Tasks))
		}

		if enc, err := a.dungeon.GetEncounter(ctx, &dungeon.GetEncounterInput{}); err == nil && enc.Quest != nil {
			fmt.Printf("  Battle  %s (%d/%d HP)\n",
				enc.Quest.Boss.Name, enc.Quest.Boss.HP, enc.Quest.Boss.MaxHP)
		}
		return nil
	}),
}
