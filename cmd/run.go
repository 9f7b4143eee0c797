package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/freedomquest/internal/app"
	"github.com/abhisek/freedomquest/internal/audio"
	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/logging"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
// With noSave, progress lives in memory and is gone when the game exits.
func runApp(cmd *cobra.Command, noSave bool) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	tables, err := content.Default()
	if err != nil {
		log.Error("invalid game content", "error", err)
		return fmt.Errorf("load content: %w", err)
	}

	opts := session.Options{
		FeedbackDelay: cfg.FeedbackDelay,
		Cues:          audio.NewPlayer(os.Stderr, cfg.Bell, log),
		Logger:        log,
	}

	var backend progress.Backend = progress.NewMemoryBackend()
	var events store.EventRepo
	if !noSave {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		backend = st.EntryRepo()
		events = st.EventRepo()
		opts.Events = events
	}

	progressStore := progress.NewStore(backend, log)
	rec := progressStore.Load(ctx)
	log.Info("game started", "db", cfg.DBPath, "no_save", noSave, "xp", rec.XP)

	machine := session.New(progressStore, tables, opts)
	return app.Run(app.Options{
		Machine:    machine,
		Onboarding: progressStore,
		History:    events,
		Logger:     log,
	})
}
