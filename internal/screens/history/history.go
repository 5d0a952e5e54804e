// Package history shows a user's past wheel entries and trend.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/ui/layout"
	"github.com/abhisek/lifewheel/internal/ui/theme"
	"github.com/abhisek/lifewheel/internal/wheel"
)

type historyLoadedMsg struct {
	Entries []wheel.Entry
	Err     error
}

// HistoryScreen lists entries newest first; Enter expands one.
type HistoryScreen struct {
	env      *env.Env
	identity account.Identity
	entries  []wheel.Entry
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history screen for identity.
func New(e *env.Env, identity account.Identity) *HistoryScreen {
	return &HistoryScreen{
		env:      e,
		identity: identity,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo, userID := s.env.History, s.identity.UserID
	return func() tea.Msg {
		entries, err := repo.ListByUser(context.Background(), userID)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "My history"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.env.Log().Error("load history", "user_id", s.identity.UserID, "error", msg.Err)
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = history.Newest(msg.Entries)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No check-ins yet. Take your first assessment!")
	}

	set := s.env.Categories
	cw := min(width-4, 76)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(cw).Render("Your trend") + "\n\n")
	b.WriteString(components.TrendChart{
		Points: history.Trend(s.entries, set, s.env.Assessment.TrendWindow),
		Width:  cw,
	}.View())
	b.WriteString("\n\n")

	for i, e := range s.entries {
		// Entries predating a category change may not classify.
		cls, _ := wheel.Classify(set, e.Scores)
		line := fmt.Sprintf("%s   avg %4.1f   ", e.CreatedAt.Local().Format("Jan 02, 2006 15:04"), e.Average(set))
		label := components.LabelBadge(cls.Label)

		if i == s.selected {
			b.WriteString(theme.Selected.Render("▸ "+line) + label + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+line) + label + "\n")
		}

		if s.expanded[i] {
			b.WriteString(s.renderDetail(e, cw))
		}
	}

	return lipgloss.NewStyle().PaddingLeft((width - cw) / 2).Render(b.String())
}

func (s *HistoryScreen) renderDetail(e wheel.Entry, width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(components.WheelChart{Set: s.env.Categories, Scores: e.Scores, Width: width - 4}.View())
	if e.Narrative != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(width-4).Foreground(theme.Text).Render(e.Narrative) + "\n")
	}
	b.WriteString("\n")
	return lipgloss.NewStyle().PaddingLeft(4).Render(b.String()) + "\n"
}
