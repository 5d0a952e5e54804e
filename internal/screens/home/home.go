// Package home is the signed-in user's main menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/admin"
	assessmentscreen "github.com/abhisek/lifewheel/internal/screens/assessment"
	"github.com/abhisek/lifewheel/internal/screens/env"
	historyscreen "github.com/abhisek/lifewheel/internal/screens/history"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/ui/theme"
)

// HomeScreen lists what the signed-in user can do.
type HomeScreen struct {
	env      *env.Env
	identity account.Identity
	menu     components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the menu for identity. logout builds the screen that
// replaces the whole stack when the user signs out.
func New(e *env.Env, identity account.Identity, logout func() screen.Screen) *HomeScreen {
	items := []components.MenuItem{
		{Label: "New assessment", Hint: "rate the six areas of your life", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: assessmentscreen.New(e, identity)}
			}
		}},
		{Label: "My history", Hint: "past check-ins and your trend", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(e, identity)}
			}
		}},
		{Label: "Admin dashboard", Hint: "settings, users, stats and notifications", Disabled: !identity.IsAdmin(), Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: admin.New(e, identity)}
			}
		}},
		{Label: "Log out", Action: func() tea.Cmd {
			e.Identity = account.Identity{}
			next := logout()
			return func() tea.Msg {
				return router.ResetScreenMsg{Screen: next}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		env:      e,
		identity: identity,
		menu:     components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	greeting := theme.Title.Render(fmt.Sprintf("Hello, %s", h.identity.Name))

	var chips []string
	for _, c := range h.env.Categories.All() {
		chips = append(chips, lipgloss.NewStyle().Foreground(theme.Hex(c.Color)).Render("● "+c.Name))
	}

	content := strings.Join([]string{
		greeting,
		theme.Subtitle.Render("What would you like to do?"),
		"",
		strings.Join(chips, "  "),
		"",
		h.menu.View(),
	}, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
