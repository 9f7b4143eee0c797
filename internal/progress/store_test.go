package progress

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/freedomquest/internal/logging"
)

// failingBackend fails every operation.
type failingBackend struct{}

func (failingBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingBackend) Set(context.Context, string, string) error { return errors.New("disk full") }
func (failingBackend) Delete(context.Context, string) error      { return errors.New("disk full") }

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return logging.FromZap(zap.New(core)), logs
}

func TestLoadMissingYieldsDefaults(t *testing.T) {
	s := NewStore(NewMemoryBackend(), nil)

	assert.Equal(t, Default(), s.Load(context.Background()))
}

func TestApplyThenReload(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := NewStore(backend, nil)
	s.Load(ctx)

	applied := s.Apply(ctx, Partial{
		XP:               Int(100),
		Unlocked:         map[string]bool{"gandhi": true, "netaji": true},
		Progress:         map[string]Completion{"gandhi": {Completed: true, Perfect: true}},
		Sound:            Bool(false),
		CurrentCharacter: String("gandhi"),
	})

	reloaded := NewStore(backend, nil).Load(ctx)
	assert.Equal(t, applied, reloaded)
}

func TestApplyEmptyLeavesRecordUnchanged(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend(), nil)
	before := s.Apply(ctx, Partial{XP: Int(50)})

	assert.Equal(t, before, s.Apply(ctx, Partial{}))
}

func TestSavedBlobShape(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := NewStore(backend, nil)
	s.Apply(ctx, Partial{XP: Int(50)})

	raw, ok, err := backend.Get(ctx, StateKey)
	require.NoError(t, err)
	require.True(t, ok)

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &fields))
	assert.ElementsMatch(t,
		[]string{"xp", "unlocked", "progress", "sound", "currentCharacter", "quizIndex"},
		keysOf(fields))
	assert.Nil(t, fields["currentCharacter"])
	assert.EqualValues(t, 50, fields["xp"])
	assert.EqualValues(t, 0, fields["quizIndex"])
}

func TestLoadShallowMergesOverDefaults(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, StateKey, `{"xp":250,"quizIndex":2,"currentCharacter":"netaji"}`))

	rec := NewStore(backend, nil).Load(ctx)

	assert.Equal(t, 250, rec.XP)
	assert.Equal(t, "netaji", rec.CurrentCharacter)
	assert.True(t, rec.Sound, "absent fields keep their defaults")
	assert.True(t, rec.IsUnlocked("gandhi"))
	assert.False(t, rec.IsUnlocked("netaji"))
}

func TestLoadCorruptBlobFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{xp: 12`},
		{"array", `[1,2,3]`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			backend := NewMemoryBackend()
			require.NoError(t, backend.Set(ctx, StateKey, tt.raw))
			log, logs := observedLogger()

			rec := NewStore(backend, log).Load(ctx)

			assert.Equal(t, Default(), rec)
			assert.Equal(t, 1, logs.FilterMessage("failed to load game state").Len())
		})
	}
}

func TestLoadSkipsMistypedField(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, StateKey, `{"xp":"lots","sound":false}`))
	log, logs := observedLogger()

	rec := NewStore(backend, log).Load(ctx)

	assert.Equal(t, 0, rec.XP)
	assert.False(t, rec.Sound)
	assert.Equal(t, 1, logs.FilterMessage("ignoring stored field").Len())
}

func TestLoadSeedAlwaysUnlocked(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, StateKey, `{"unlocked":{"netaji":true}}`))

	rec := NewStore(backend, nil).Load(ctx)

	assert.True(t, rec.IsUnlocked("gandhi"))
	assert.True(t, rec.IsUnlocked("netaji"))
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	log, logs := observedLogger()
	s := NewStore(failingBackend{}, log)

	assert.Equal(t, Default(), s.Load(ctx))

	rec := s.Apply(ctx, Partial{XP: Int(50)})
	assert.Equal(t, 50, rec.XP, "in-memory record stays authoritative")
	assert.Equal(t, 50, s.Record().XP)

	s.MarkOnboardingSeen(ctx)
	assert.False(t, s.OnboardingSeen(ctx))

	assert.Equal(t, 1, logs.FilterMessage("failed to load game state").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save game state").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save onboarding flag").Len())
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := NewStore(backend, nil)
	s.Apply(ctx, Partial{XP: Int(300)})

	assert.Equal(t, Default(), s.Reset(ctx))
	_, ok, _ := backend.Get(ctx, StateKey)
	assert.False(t, ok)
	assert.Equal(t, Default(), NewStore(backend, nil).Load(ctx))
}

func TestOnboardingFlag(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryBackend(), nil)

	assert.False(t, s.OnboardingSeen(ctx))
	s.MarkOnboardingSeen(ctx)
	assert.True(t, s.OnboardingSeen(ctx))

	s.Reset(ctx)
	assert.True(t, s.OnboardingSeen(ctx), "reset keeps the onboarding flag")

	s.ClearOnboarding(ctx)
	assert.False(t, s.OnboardingSeen(ctx))
}

func TestRecordReturnsCopy(t *testing.T) {
	s := NewStore(NewMemoryBackend(), nil)
	r := s.Record()
	r.Unlocked["netaji"] = true

	assert.False(t, s.Record().IsUnlocked("netaji"))
}

func keysOf(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
