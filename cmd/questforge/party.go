package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/orchestrators/party"
)

var partyTaskDifficulty string

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Team up on shared tasks",
}

var partyCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a party with you as leader",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.party.CreateParty(ctx, &party.CreatePartyInput{Name: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Party %q created, id %s\n", out.Party.Name, out.Party.ID)
		return nil
	}),
}

var partyJoinCmd = &cobra.Command{
	Use:   "join <party-id>",
	Short: "Join an existing party",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.party.JoinParty(ctx, &party.JoinPartyInput{PartyID: args[0]})
		if err != nil {
			return err
		}
		fmt.Printf("Joined %q (%d members)\n", out.Party.Name, len(out.Party.Members))
		return nil
	}),
}

var partyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all parties",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		out, err := a.party.ListParties(ctx, &party.ListPartiesInput{})
		if err != nil {
			return err
		}
		if len(out.Parties) == 0 {
			fmt.Println("No parties yet.")
			return nil
		}
		for _, p := range out.Parties {
			fmt.Printf("%s  %q  leader=%s  members=%s  tasks=%d\n",
				p.ID, p.Name, p.Leader, strings.Join(p.Members, ","), len(p.Tasks))
		}
		return nil
	}),
}

var partyShowCmd = &cobra.Command{
	Use:   "show <party-id>",
	Short: "Show a party and its shared tasks",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.party.GetParty(ctx, &party.GetPartyInput{PartyID: args[0]})
		if err != nil {
			return err
		}
		p := out.Party

		fmt.Printf("%q (%s), led by %s\n", p.Name, p.ID, p.Leader)
		fmt.Printf("Members: %s\n", strings.Join(p.Members, ", "))
		for _, t := range p.Tasks {
			status := fmt.Sprintf("%d/%d done", len(t.CompletedBy), len(p.Members))
			if p.FullyComplete(t) {
				status = "complete"
			}
			fmt.Printf("  %s  %q (%s)  %s\n", t.ID, t.Title, t.Difficulty, status)
		}
		return nil
	}),
}

var partyTaskAddCmd = &cobra.Command{
	Use:   "task-add <party-id> <title>",
	Short: "Add a shared task (leader only)",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.party.AddPartyTask(ctx, &party.AddPartyTaskInput{
			PartyID:    args[0],
			Title:      args[1],
			Difficulty: entities.Difficulty(partyTaskDifficulty),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added %s: %q\n", out.Task.ID, out.Task.Title)
		return nil
	}),
}

var partyTaskDoneCmd = &cobra.Command{
	Use:   "task-done <party-id> <task-id>",
	Short: "Record your completion of a shared task",
	Args:  cobra.ExactArgs(2),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.party.CompletePartyTask(ctx, &party.CompletePartyTaskInput{
			PartyID: args[0],
			TaskID:  args[1],
		})
		if err != nil {
			return err
		}
		fmt.Printf("Done! +%d coins, +%d XP\n", out.Reward.Coins, out.Reward.Exp)
		if out.FullyComplete {
			fmt.Println("The whole party has finished this task.")
		}
		return nil
	}),
}

func init() {
	partyTaskAddCmd.Flags().StringVar(&partyTaskDifficulty, "difficulty", "easy", "easy, medium, or hard")

	partyCmd.AddCommand(partyCreateCmd)
	partyCmd.AddCommand(partyJoinCmd)
	partyCmd.AddCommand(partyListCmd)
	partyCmd.AddCommand(partyShowCmd)
	partyCmd.AddCommand(partyTaskAddCmd)
	partyCmd.AddCommand(partyTaskDoneCmd)
}
