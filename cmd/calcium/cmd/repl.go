package cmd

import (
	"github.com/spf13/cobra"

	"github.com/calciumlabs/calcium/internal/tui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cfg, log)
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
