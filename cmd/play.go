package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	RunE: func(cmd *cobra.Command, args []string) error {
		noSave, _ := cmd.Flags().GetBool("no-save")
		return runApp(cmd, noSave)
	},
}

func init() {
	playCmd.Flags().Bool("no-save", false, "Play without reading or writing saved progress")
}
