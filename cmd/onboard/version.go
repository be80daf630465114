package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lingokit/onboard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of onboard",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("onboard version %s\n", onboard.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
