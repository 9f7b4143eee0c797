package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/session"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play one leader's story and quiz in plain text (no database)",
	Long: `Play through a leader's story, decision and quiz as plain text.

This is a stateless tool: no database, no saved progress, no attempt log.
Every leader is playable. Useful for proofreading content.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("leader", "", "Leader ID, see 'freedomquest leaders' (required)")
	_ = previewCmd.MarkFlagRequired("leader")
}

func runPreview(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("leader")

	tables, err := content.Default()
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	if _, ok := tables.CharacterByID(id); !ok {
		return fmt.Errorf("no leader found for %q", id)
	}

	return playPreview(cmd.Context(), tables, id, cmd.InOrStdin(), cmd.OutOrStdout())
}

// playPreview drives a session machine over an in-memory store from
// line-based input. Delayed transitions fire immediately.
func playPreview(ctx context.Context, tables *content.Tables, id string, in io.Reader, out io.Writer) error {
	ps := progress.NewStore(progress.NewMemoryBackend(), nil)
	unlocked := map[string]bool{}
	for _, c := range tables.Characters() {
		unlocked[c.ID] = true
	}
	ps.Apply(ctx, progress.Partial{Unlocked: unlocked, Sound: progress.Bool(false)})

	m := session.New(ps, tables, session.Options{})
	m.Start()
	m.SelectCharacter(ctx, id)

	scanner := bufio.NewScanner(in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintf(out, "── %s ──\n\n", tables.Name(id))

	st, _ := m.Story()
	if !st.HasContent {
		fmt.Fprintln(out, "(no story)")
		return nil
	}
	for {
		st, _ = m.Story()
		if st.ShowingDecision {
			break
		}
		slide, _ := st.CurrentSlide()
		fmt.Fprintf(out, "[%d/%d] %s\n\n", st.SlideIndex+1, len(st.Story.Slides), slide.Text)
		m.AdvanceSlide()
	}

	d := st.Story.Decision
	fmt.Fprintf(out, "%s\n  A) %s\n  B) %s\n", d.Scenario, d.A.Text, d.B.Text)
	var cont *session.Continuation
	for cont == nil {
		answer, ok := prompt("\nYour choice (A/B): ")
		if !ok {
			return nil
		}
		switch strings.ToUpper(answer) {
		case "A":
			cont, _ = m.ChooseDecision(session.OptionA)
		case "B":
			cont, _ = m.ChooseDecision(session.OptionB)
		}
	}
	st, _ = m.Story()
	chosen, _ := st.ChosenOption()
	fmt.Fprintf(out, "%s %s\n\n", verdict(chosen.Correct), st.Feedback)
	m.Fire(ctx, *cont)

	for m.Screen() == session.ScreenQuiz {
		q, _ := m.Quiz()
		question, ok := q.CurrentQuestion()
		if !ok {
			fmt.Fprintln(out, "(no quiz)")
			return nil
		}

		fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", q.QuestionIndex+1, len(q.Questions), question.Text)
		for j, c := range question.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		answer, ok := prompt("\nYour answer: ")
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintln(out, "(enter a number)")
			continue
		}
		restart, ok := m.SelectAnswer(ctx, n-1)
		if !ok {
			fmt.Fprintln(out, "(no such choice)")
			continue
		}

		q, _ = m.Quiz()
		fmt.Fprintf(out, "%s %s\n", verdict(q.LastCorrect), question.Explanation)
		if restart != nil {
			fmt.Fprintf(out, "XP reset to %d. Restarting the quiz.\n\n", q.CheckpointXP)
			m.Fire(ctx, *restart)
			continue
		}
		fmt.Fprintf(out, "XP: %d\n\n", m.Record().XP)
		m.Next(ctx)
	}

	fmt.Fprintf(out, "── Quest complete: %d XP ──\n", m.Record().XP)
	return nil
}

func verdict(correct bool) string {
	if correct {
		return "\033[32m✓ Correct!\033[0m"
	}
	return "\033[31m✗ Wrong.\033[0m"
}
