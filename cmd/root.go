package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/freedomquest/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "freedomquest",
	Short: "Story and quiz game about India's freedom struggle",
	Long: "Freedom Quest: relive the stories of India's freedom fighters, make their decisions\n" +
		"and prove what you learned in quizzes. Progress is saved locally.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FREEDOMQUEST_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leadersCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and resolves file paths, with the
// --db flag taking priority over FREEDOMQUEST_DB and the XDG default.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	dbFlag, _ := cmd.Flags().GetString("db")
	if err := cfg.ResolvePaths(dbFlag); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
