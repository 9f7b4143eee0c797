package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/logging"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show saved progress and recent quiz attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("limit")

		st, ps, err := openProgress(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		tables, err := content.Default()
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		rec := ps.Load(ctx)
		out := cmd.OutOrStdout()
		events := st.EventRepo()

		printTotals(out, rec, len(tables.Characters()))

		fmt.Fprintln(out, "\nLeaders")
		fmt.Fprintf(out, "  %-10s  %-28s  %-10s  %8s  %8s\n", "ID", "Name", "Status", "Attempts", "Restarts")
		fmt.Fprintln(out, "  "+strings.Repeat("─", 72))
		for _, c := range tables.Characters() {
			attempts, err := events.CountAttemptEvents(ctx, c.ID, store.ActionStart)
			if err != nil {
				return fmt.Errorf("count attempts: %w", err)
			}
			restarts, err := events.CountAttemptEvents(ctx, c.ID, store.ActionRestart)
			if err != nil {
				return fmt.Errorf("count restarts: %w", err)
			}
			fmt.Fprintf(out, "  %-10s  %-28s  %-10s  %8d  %8d\n",
				c.ID, truncate(c.Name, 28), leaderStatus(rec, c.ID), attempts, restarts)
		}

		recent, err := events.RecentAttemptEvents(ctx, limit)
		if err != nil {
			return fmt.Errorf("recent attempts: %w", err)
		}
		fmt.Fprintln(out, "\nRecent activity (newest first)")
		if len(recent) == 0 {
			fmt.Fprintln(out, "  No quiz attempts yet.")
			return nil
		}
		for _, ev := range recent {
			fmt.Fprintf(out, "  %s  %-10s  %s\n",
				ev.Timestamp.Local().Format(time.DateTime), ev.CharacterID, describeEvent(ev))
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Number of recent attempt events to show (0 for all)")
}

// openProgress opens the configured database and a progress store on it.
func openProgress(cmd *cobra.Command) (*store.Store, *progress.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return st, progress.NewStore(st.EntryRepo(), logging.Nop()), nil
}

func printTotals(w io.Writer, rec progress.Record, leaders int) {
	sound := "off"
	if rec.Sound {
		sound = "on"
	}
	fmt.Fprintln(w, "Freedom Quest progress")
	fmt.Fprintf(w, "  %-20s %d\n", "Total XP:", rec.XP)
	fmt.Fprintf(w, "  %-20s %d of %d\n", "Leaders unlocked:", rec.UnlockedCount(), leaders)
	fmt.Fprintf(w, "  %-20s %d\n", "Quests completed:", rec.CompletedCount())
	fmt.Fprintf(w, "  %-20s %s\n", "Sound:", sound)
}

func leaderStatus(rec progress.Record, id string) string {
	if !rec.IsUnlocked(id) {
		return "locked"
	}
	c, ok := rec.Completion(id)
	switch {
	case ok && c.Perfect:
		return "perfect"
	case ok && c.Completed:
		return "completed"
	}
	return "unlocked"
}

func describeEvent(ev store.AttemptEvent) string {
	switch ev.Action {
	case store.ActionStart:
		return fmt.Sprintf("started quiz at %d XP", ev.XP)
	case store.ActionAnswer:
		verdict := "wrong"
		if ev.Correct {
			verdict = "correct"
		}
		return fmt.Sprintf("Q%d %s, %d XP", ev.QuestionIndex+1, verdict, ev.XP)
	case store.ActionRestart:
		return fmt.Sprintf("restarted quiz at %d XP", ev.XP)
	case store.ActionComplete:
		return fmt.Sprintf("completed quiz with %d XP", ev.XP)
	}
	return ev.Action
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
