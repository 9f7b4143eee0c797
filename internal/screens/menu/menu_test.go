package menu

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/freedomquest/internal/content"
	"github.com/abhisek/freedomquest/internal/progress"
	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/session"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestMenu(t *testing.T) (*MenuScreen, *session.Machine) {
	t.Helper()
	tables, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := session.New(progress.NewStore(progress.NewMemoryBackend(), nil), tables, session.Options{})
	return New(m), m
}

func TestMenu_StartQuest(t *testing.T) {
	s, m := newTestMenu(t)

	s.Update(specialKey(tea.KeyEnter))

	if m.Screen() != session.ScreenCharacterSelect {
		t.Errorf("expected character select, got %s", m.Screen())
	}
}

func TestMenu_OverlayItems(t *testing.T) {
	tests := []struct {
		downs int
		want  tea.Msg
	}{
		{1, screen.OpenHelpMsg{}},
		{2, screen.OpenSettingsMsg{}},
		{3, screen.OpenHistoryMsg{}},
	}

	for _, tt := range tests {
		s, m := newTestMenu(t)
		for i := 0; i < tt.downs; i++ {
			s.Update(specialKey(tea.KeyDown))
		}
		_, cmd := s.Update(specialKey(tea.KeyEnter))
		if cmd == nil {
			t.Fatalf("expected a command after %d downs", tt.downs)
		}
		if got := cmd(); got != tt.want {
			t.Errorf("expected %T, got %T", tt.want, got)
		}
		if m.Screen() != session.ScreenMenu {
			t.Errorf("overlay items must not leave the menu, got %s", m.Screen())
		}
	}
}

func TestMenu_View(t *testing.T) {
	s, _ := newTestMenu(t)

	view := s.View(100, 30)
	for _, want := range []string{"Start Quest", "How to Play", "Settings", "History", "Exit", "0 XP"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
