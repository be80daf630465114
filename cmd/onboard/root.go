package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lingokit/onboard/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "onboard drives the lingokit onboarding conversation",
	Long:  `onboard runs the scripted onboarding Q&A session for the lingokit language-learning client, either interactively in the terminal or as an HTTP service for a UI shell.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", envFile, err)
			}
		} else {
			_ = godotenv.Load() // best-effort .env
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file with backend settings")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.ParseLevel(level))
}
