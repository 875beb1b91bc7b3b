package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "amenitygen", app.BuildVersion())
	},
}
