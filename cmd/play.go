package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a self-assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, _ := cmd.Flags().GetBool("skip-welcome")
		return runApp(cmd, skip)
	},
}

func init() {
	playCmd.Flags().Bool("skip-welcome", false, "Go straight to the sign-in form")
	playCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address while playing (e.g. 127.0.0.1:9090)")
}
