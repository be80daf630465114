package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the cached completion flag for a user",
	Long:  `Removes the locally cached "already onboarded" flag so the gate consults the remote source of truth on the next run. Does not touch remote profile data.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cachePath, _ := cmd.Flags().GetString("cache")
		userID, _ := cmd.Flags().GetString("user")
		if cachePath == "" {
			return fmt.Errorf("--cache is required: the in-memory store has nothing to clear")
		}

		flags, err := buildFlagStore(cachePath)
		if err != nil {
			return err
		}
		if err := flags.Clear(cmd.Context(), userID); err != nil {
			return err
		}
		fmt.Printf("Cleared completion flag for %s\n", userID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().String("cache", "", "Path to the local completion-flag database")
	resetCmd.Flags().String("user", "local-user", "User ID to clear")
}
