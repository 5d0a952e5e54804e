package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	spinEnd      = 1000 * time.Millisecond
	totalDur     = 2500 * time.Millisecond
)

// wheelFrames rotate the spokes while the wheel spins up.
var wheelFrames = []string{
	`    ╭───────╮
  ╭─┤   │   ├─╮
  │  ╲  │  ╱  │
  ├────(●)────┤
  │  ╱  │  ╲  │
  ╰─┤   │   ├─╯
    ╰───────╯`,
	`    ╭───────╮
  ╭─┤ ╲   ╱ ├─╮
  │    ╲ ╱    │
  ├───( ● )───┤
  │    ╱ ╲    │
  ╰─┤ ╱   ╲ ├─╯
    ╰───────╯`,
}

const tagline = "How balanced is your life today?"

type tickMsg time.Time

// WelcomeScreen spins the wheel, then waits for a key before handing
// over to the screen built by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next().
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.elapsed < spinEnd {
			return w, tick()
		}
		return w, nil

	case tea.KeyPressMsg:
		// The first key during the intro fast-forwards it.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	frame := wheelFrames[0]
	if w.elapsed < spinEnd {
		frame = wheelFrames[w.tickCount%len(wheelFrames)]
	}
	sections := []string{lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame)}

	if w.elapsed >= spinEnd {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
		)
	}
	if w.elapsed >= totalDur {
		sections = append(sections, "", theme.Hint.Render("press any key to begin"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
