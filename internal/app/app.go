// Package app is the root Bubble Tea model: screen router, frame and
// global keys.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/screens/home"
	"github.com/abhisek/lifewheel/internal/screens/register"
	"github.com/abhisek/lifewheel/internal/screens/welcome"
	"github.com/abhisek/lifewheel/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Env *env.Env

	// SkipWelcome starts on the sign-in form.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *env.Env
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	e := opts.Env
	var signIn, afterSignIn func() screen.Screen
	toHome := func(id account.Identity) screen.Screen {
		return home.New(e, id, signIn)
	}
	signIn = func() screen.Screen {
		return register.New(e, toHome)
	}
	afterSignIn = signIn
	if !e.Identity.Anonymous() {
		afterSignIn = func() screen.Screen { return toHome(e.Identity) }
	}

	first := afterSignIn()
	if !opts.SkipWelcome {
		first = welcome.New(afterSignIn)
	}
	return AppModel{env: e, router: router.New(first)}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturesInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if msg, small := layout.TooSmall(m.width, m.height); small {
		v.SetContent(msg)
		return v
	}

	active := m.router.Active()
	frame := layout.Frame{Who: m.env.Who(), Hints: m.footerHints(active)}
	if active != nil {
		frame.Title = active.Title()
	}

	content := m.router.View(m.width, frame.ContentHeight(m.width, m.height))
	v.SetContent(frame.Render(content, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Env == nil {
		return fmt.Errorf("app: no environment")
	}
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
