package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase saved progress",
	Long: "Erase saved progress: XP, unlocked leaders, completed quests and settings.\n" +
		"With --all the first-visit guide is shown again on the next start.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		all, _ := cmd.Flags().GetBool("all")

		st, ps, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ps.Reset(ctx)
		if all {
			ps.ClearOnboarding(ctx)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Progress reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Also forget that the first-visit guide was shown")
}
