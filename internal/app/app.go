package app

import (
	"context"
	"fmt"
	"os"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/freedomquest/internal/logging"
	"github.com/abhisek/freedomquest/internal/router"
	"github.com/abhisek/freedomquest/internal/screen"
	"github.com/abhisek/freedomquest/internal/screens/characters"
	"github.com/abhisek/freedomquest/internal/screens/help"
	"github.com/abhisek/freedomquest/internal/screens/history"
	"github.com/abhisek/freedomquest/internal/screens/menu"
	"github.com/abhisek/freedomquest/internal/screens/quiz"
	"github.com/abhisek/freedomquest/internal/screens/report"
	"github.com/abhisek/freedomquest/internal/screens/settings"
	"github.com/abhisek/freedomquest/internal/screens/story"
	"github.com/abhisek/freedomquest/internal/session"
	"github.com/abhisek/freedomquest/internal/ui/keys"
	"github.com/abhisek/freedomquest/internal/ui/layout"
)

// Onboarding tracks whether the first-visit guide has been shown.
type Onboarding interface {
	OnboardingSeen(ctx context.Context) bool
	MarkOnboardingSeen(ctx context.Context)
}

// Options holds dependencies injected into the app.
type Options struct {
	Machine    *session.Machine
	Onboarding Onboarding     // nil skips the first-visit guide
	History    history.Source // nil when progress is not saved
	Logger     *logging.Logger
}

// AppModel is the root Bubble Tea model. The bottom of the router stack
// always shows the machine's current screen; overlays such as help are
// pushed on top of it.
type AppModel struct {
	machine    *session.Machine
	onboarding Onboarding
	history    history.Source
	log        *logging.Logger

	router *router.Router
	shown  session.Screen
	width  int
	height int
}

// newAppModel creates a new AppModel showing the machine's screen.
func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	m := AppModel{
		machine:    opts.Machine,
		onboarding: opts.Onboarding,
		history:    opts.History,
		log:        log.With("component", "app"),
		shown:      opts.Machine.Screen(),
	}
	m.router = router.New(m.screenFor(m.shown))
	return m
}

// screenFor builds the screen that renders a machine state.
func (m AppModel) screenFor(s session.Screen) screen.Screen {
	switch s {
	case session.ScreenCharacterSelect:
		return characters.New(m.machine)
	case session.ScreenStory:
		return story.New(m.machine)
	case session.ScreenQuiz:
		return quiz.New(m.machine)
	case session.ScreenReport:
		return report.New(m.machine)
	}
	return menu.New(m.machine)
}

func (m AppModel) historyScreen() screen.Screen {
	return history.New(m.history, m.machine.Tables().Name)
}

func (m AppModel) Init() tea.Cmd {
	if m.onboarding != nil && !m.onboarding.OnboardingSeen(context.Background()) {
		return func() tea.Msg { return screen.OpenHelpMsg{} }
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Back):
			if m.router.HasOverlay() {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			m.machine.Back()
			cmd := m.sync()
			return m, cmd
		case !m.router.HasOverlay() && key.Matches(msg, keys.Help):
			return m, m.router.Push(help.New())
		case !m.router.HasOverlay() && key.Matches(msg, keys.Settings):
			return m, m.router.Push(settings.New(m.machine))
		case !m.router.HasOverlay() && key.Matches(msg, keys.History):
			return m, m.router.Push(m.historyScreen())
		}

	case screen.OpenHelpMsg:
		if m.router.HasOverlay() {
			return m, nil
		}
		return m, m.router.Push(help.New())

	case screen.OpenSettingsMsg:
		if m.router.HasOverlay() {
			return m, nil
		}
		return m, m.router.Push(settings.New(m.machine))

	case screen.OpenHistoryMsg:
		if m.router.HasOverlay() {
			return m, nil
		}
		return m, m.router.Push(m.historyScreen())

	case screen.ContinuationMsg:
		m.machine.Fire(context.Background(), msg.C)
		cmd := m.sync()
		return m, cmd
	}

	if _, ok := msg.(router.PopScreenMsg); ok {
		m.acknowledgeHelp()
	}
	cmd := m.router.Update(msg)
	syncCmd := m.sync()
	return m, tea.Batch(cmd, syncCmd)
}

// acknowledgeHelp sets the first-visit flag when the guide is closed.
func (m AppModel) acknowledgeHelp() {
	if m.onboarding == nil {
		return
	}
	if _, ok := m.router.Active().(*help.HelpScreen); ok {
		m.onboarding.MarkOnboardingSeen(context.Background())
	}
}

// sync swaps the base screen when the machine has moved to another
// state. While an overlay is open the swap waits until it closes.
func (m *AppModel) sync() tea.Cmd {
	if m.router.HasOverlay() || m.machine.Screen() == m.shown {
		return nil
	}
	m.log.Debug("screen changed", "from", m.shown.String(), "to", m.machine.Screen().String())
	m.shown = m.machine.Screen()
	return m.router.Replace(m.screenFor(m.shown))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render composes the full frame for the current window size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.machine.Record().XP, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else {
		footerHints = keys.Hints(keys.Back)
	}
	if !m.router.HasOverlay() {
		footerHints = append(footerHints, keys.Hints(keys.Help, keys.Settings, keys.History)...)
	}
	footerHints = append(footerHints, keys.Hints(keys.Quit)...)

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
