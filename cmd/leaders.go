package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/freedomquest/internal/content"
)

var leadersCmd = &cobra.Command{
	Use:   "leaders",
	Short: "List the playable leaders and their content",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := content.Default()
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%-10s  %-28s  %-30s  %6s  %9s  %s\n",
			"ID", "Name", "Title", "Slides", "Questions", "Unlocks")
		fmt.Fprintln(out, strings.Repeat("─", 104))

		chars := tables.Characters()
		for _, c := range chars {
			story, _ := tables.StoryByCharacterID(c.ID)
			quiz, _ := tables.QuizByCharacterID(c.ID)
			unlocks := strings.Join(c.Unlocks, ", ")
			if unlocks == "" {
				unlocks = "-"
			}
			id := c.ID
			if c.Seed {
				id += "*"
			}
			fmt.Fprintf(out, "%-10s  %-28s  %-30s  %6d  %9d  %s\n",
				id, truncate(c.Name, 28), truncate(c.Title, 30),
				len(story.Slides), quiz.Len(), unlocks)
		}

		fmt.Fprintf(out, "\n%d leaders (* starts unlocked)\n", len(chars))
		return nil
	},
}
