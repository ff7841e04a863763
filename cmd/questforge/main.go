// Package main is the entry point for the questforge CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questforge",
	Short: "A gamified task manager",
	Long: `questforge turns your to-do list into an adventure: finish tasks to
earn coins and experience, level up, buy gear, team up in parties, and
spend your hard-earned stats on dungeon bosses.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(partyCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(dungeonCmd)
	rootCmd.AddCommand(sweepCmd)
}
