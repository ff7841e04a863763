package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/entities"
	"github.com/questforge/questforge/internal/orchestrators/dungeon"
)

var fightRiddle bool

var dungeonCmd = &cobra.Command{
	Use:   "dungeon",
	Short: "Fight bosses for coins and experience",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		fmt.Println("Bosses:")
		for _, key := range entities.BossKeys() {
			b, _ := entities.BossByKey(key)
			fmt.Printf("  %-8s lvl %d  %3d HP  atk %2d  def %2d  -> %d coins, %d XP\n",
				key, b.Level, b.MaxHP, b.Attack, b.Defense, b.CoinReward, b.XPReward)
		}

		enc, err := a.dungeon.GetEncounter(ctx, &dungeon.GetEncounterInput{})
		if err == nil && enc.Quest != nil {
			fmt.Printf("\nIn battle with %s (%d/%d HP). Use `questforge dungeon attack` or `answer`.\n",
				enc.Quest.Boss.Name, enc.Quest.Boss.HP, enc.Quest.Boss.MaxHP)
		}
		return nil
	}),
}

var dungeonFightCmd = &cobra.Command{
	Use:   "fight <boss>",
	Short: "Start an encounter (goblin, orc, dragon, demon)",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		mode := dungeon.ModeCombat
		if fightRiddle {
			mode = dungeon.ModeRiddle
		}
		out, err := a.dungeon.StartEncounter(ctx, &dungeon.StartEncounterInput{
			BossKey: args[0],
			Mode:    mode,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Battle started against %s (%d HP)!\n", out.Quest.Boss.Name, out.Quest.Boss.HP)
		if out.Question != "" {
			fmt.Printf("Riddle: %s\n", out.Question)
		}
		return nil
	}),
}

var dungeonAttackCmd = &cobra.Command{
	Use:   "attack",
	Short: "Attack the boss",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		out, err := a.dungeon.Attack(ctx, &dungeon.AttackInput{})
		if err != nil {
			return err
		}
		for _, line := range out.Log {
			fmt.Println(line)
		}
		if out.Outcome == dungeon.OutcomeOngoing && a.cfg.CounterDelay > 0 {
			// Give the deferred counter-attack time to land before the
			// process exits and the state is flushed.
			time.Sleep(a.cfg.CounterDelay + 100*time.Millisecond)
		}
		return nil
	}),
}

var dungeonAnswerCmd = &cobra.Command{
	Use:   "answer <text>",
	Short: "Answer the boss's riddle",
	Args:  cobra.ExactArgs(1),
	RunE: run(func(ctx context.Context, a *app, args []string) error {
		out, err := a.dungeon.SubmitAnswer(ctx, &dungeon.SubmitAnswerInput{Answer: args[0]})
		if err != nil {
			return err
		}
		for _, line := range out.Log {
			fmt.Println(line)
		}
		if out.Hint != "" {
			fmt.Printf("Hint: %s\n", out.Hint)
		}
		return nil
	}),
}

var dungeonFleeCmd = &cobra.Command{
	Use:   "flee",
	Short: "Abandon the encounter",
	Args:  cobra.NoArgs,
	RunE: run(func(ctx context.Context, a *app, _ []string) error {
		_, err := a.dungeon.Flee(ctx, &dungeon.FleeInput{})
		return err
	}),
}

func init() {
	dungeonFightCmd.Flags().BoolVar(&fightRiddle, "riddle", false, "out-puzzle the boss instead of fighting")

	dungeonCmd.AddCommand(dungeonFightCmd)
	dungeonCmd.AddCommand(dungeonAttackCmd)
	dungeonCmd.AddCommand(dungeonAnswerCmd)
	dungeonCmd.AddCommand(dungeonFleeCmd)
}
