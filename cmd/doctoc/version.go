package main

import (
	"fmt"

	"github.com/dgallion1/doctoc/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "doctoc %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
