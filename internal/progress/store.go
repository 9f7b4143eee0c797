package progress

import (
	"context"

	"github.com/abhisek/freedomquest/internal/logging"
)

// Storage keys.
const (
	StateKey      = "fq_state"
	OnboardingKey = "fq_seen_onboarding"
)

// Store is the authoritative in-memory progression record, mirrored to a
// Backend after every change. It is owned by a single goroutine (the UI
// loop) and does no locking.
//
// Persistence is best effort: read failures fall back to defaults, write
// failures are logged and the in-memory record stays authoritative. There
// is no schema version; renaming a stored field needs a manual migration.
type Store struct {
	backend Backend
	log     *logging.Logger
	rec     Record
}

// NewStore returns a store holding defaults. Call Load to read saved state.
func NewStore(backend Backend, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		backend: backend,
		log:     log.With("component", "progress"),
		rec:     Default(),
	}
}

// Load reads the saved blob and merges it over defaults. It never fails:
// a missing, unreadable or malformed blob yields defaults.
func (s *Store) Load(ctx context.Context) Record {
	s.rec = Default()

	raw, ok, err := s.backend.Get(ctx, StateKey)
	if err != nil {
		s.log.Warn("failed to load game state", "error", err)
		return s.Record()
	}
	if !ok {
		return s.Record()
	}

	rec, fieldErrs, err := decode(raw, Default())
	if err != nil {
		s.log.Warn("failed to load game state", "error", err)
		return s.Record()
	}
	for _, fe := range fieldErrs {
		s.log.Warn("ignoring stored field", "error", fe)
	}
	s.rec = rec
	return s.Record()
}

// Apply shallow-merges p into the current record, saves it and returns
// the new record. Values are not validated.
func (s *Store) Apply(ctx context.Context, p Partial) Record {
	s.rec = s.rec.Merge(p)
	s.save(ctx)
	return s.Record()
}

// Record returns a copy of the current record.
func (s *Store) Record() Record {
	return s.rec.Clone()
}

// Reset deletes the saved blob and returns to defaults.
func (s *Store) Reset(ctx context.Context) Record {
	if err := s.backend.Delete(ctx, StateKey); err != nil {
		s.log.Warn("failed to clear game state", "error", err)
	}
	s.rec = Default()
	return s.Record()
}

// OnboardingSeen reports whether the help dialog has been acknowledged.
func (s *Store) OnboardingSeen(ctx context.Context) bool {
	_, ok, err := s.backend.Get(ctx, OnboardingKey)
	if err != nil {
		s.log.Warn("failed to read onboarding flag", "error", err)
		return false
	}
	return ok
}

// MarkOnboardingSeen records that the help dialog has been acknowledged.
func (s *Store) MarkOnboardingSeen(ctx context.Context) {
	if err := s.backend.Set(ctx, OnboardingKey, "1"); err != nil {
		s.log.Warn("failed to save onboarding flag", "error", err)
	}
}

// ClearOnboarding forgets the onboarding acknowledgement.
func (s *Store) ClearOnboarding(ctx context.Context) {
	if err := s.backend.Delete(ctx, OnboardingKey); err != nil {
		s.log.Warn("failed to clear onboarding flag", "error", err)
	}
}

func (s *Store) save(ctx context.Context) {
	raw, err := encode(s.rec)
	if err != nil {
		s.log.Warn("failed to save game state", "error", err)
		return
	}
	if err := s.backend.Set(ctx, StateKey, raw); err != nil {
		s.log.Warn("failed to save game state", "error", err)
	}
}
