package admin

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/ui/layout"
	"github.com/abhisek/lifewheel/internal/ui/theme"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var slotNames = map[advice.Slot]string{
	advice.SlotIntro:      "Intro text",
	advice.SlotLow:        "Low advice",
	advice.SlotHigh:       "Balanced advice",
	advice.SlotUnbalanced: "Unbalanced advice",
}

func (a *AdminScreen) KeyHints() []layout.KeyHint {
	switch {
	case a.editing:
		return []layout.KeyHint{{Key: "Enter", Description: "Apply"}, {Key: "Esc", Description: "Cancel"}}
	case a.composing:
		return []layout.KeyHint{{Key: "Enter", Description: "Send"}, {Key: "Esc", Description: "Cancel"}}
	}

	hints := []layout.KeyHint{{Key: "Tab", Description: "Switch tab"}}
	switch a.tabs.Active {
	case tabSettings:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: "Edit"},
			layout.KeyHint{Key: "d", Description: "Default"},
			layout.KeyHint{Key: "Ctrl+S", Description: "Save"})
	case tabNotify:
		hints = append(hints,
			layout.KeyHint{Key: "←→", Description: "Channel"},
			layout.KeyHint{Key: "Enter", Description: "Compose"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (a *AdminScreen) View(width, height int) string {
	if !a.identity.IsAdmin() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render("This area is for administrators only."))
	}

	cw := min(width-4, 90)
	var body string
	switch {
	case !a.loaded:
		body = theme.Hint.Render("Loading dashboard...")
	case a.loadErr != "":
		body = theme.ErrorText.Render("Error: " + a.loadErr)
	default:
		switch a.tabs.Active {
		case tabSettings:
			body = a.viewSettings(cw)
		case tabUsers:
			body = a.viewUsers()
		case tabStats:
			body = a.viewStats(cw)
		case tabNotify:
			body = a.viewNotify()
		}
	}

	parts := []string{a.tabs.View(), "", body}
	if a.notice != "" {
		parts = append(parts, "", theme.Hint.Render(a.notice))
	}
	return lipgloss.NewStyle().Padding(1, (width-cw)/2).Render(strings.Join(parts, "\n"))
}

func (a *AdminScreen) viewSettings(width int) string {
	var b strings.Builder
	for i, slot := range advice.Slots {
		name := slotNames[slot]
		text := a.draft.Get(slot)
		if i == a.slot {
			b.WriteString(theme.Selected.Render("▸ "+name) + "\n")
		} else {
			b.WriteString(theme.Unselected.Render("  "+name) + "\n")
		}
		if i == a.slot && a.editing {
			b.WriteString("    " + a.editor.View() + "\n\n")
			continue
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(width-4).PaddingLeft(4).Render(text) + "\n\n")
	}
	switch {
	case a.saving:
		b.WriteString(theme.Hint.Render("Saving..."))
	case a.Dirty():
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("● unsaved changes (Ctrl+S to save)"))
	}
	return b.String()
}

func (a *AdminScreen) viewUsers() string {
	if len(a.users) == 0 {
		return theme.Hint.Render("No registered users yet.")
	}

	counts := make(map[string]int)
	for _, e := range a.entries {
		counts[e.UserID]++
	}

	header := fmt.Sprintf("  %-20s %-15s %4s  %-28s %-6s %s", "Name", "Mobile", "Age", "Email", "Role", "Entries")
	lines := []string{lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(header)}
	for i, u := range a.users {
		row := fmt.Sprintf("%-20s %-15s %4d  %-28s %-6s %d",
			truncate(u.Name, 20), u.Contact, u.Age, truncate(u.Email, 28), u.Role, counts[u.ID])
		if i == a.userCursor {
			lines = append(lines, theme.Selected.Render("▸ "+row))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}

func (a *AdminScreen) viewStats(width int) string {
	set := a.env.Categories
	sum := history.Summarize(a.entries, set)
	if sum.Entries == 0 {
		return theme.Hint.Render("No assessments recorded yet.")
	}

	nameOf := func(id string) string {
		if c, ok := set.Lookup(id); ok {
			return c.Name
		}
		return id
	}

	lines := []string{
		theme.Body.Render(fmt.Sprintf("%d assessments by %d users · overall average %.1f",
			sum.Entries, sum.Users, sum.Average)),
		theme.Hint.Render(fmt.Sprintf("strongest: %s · weakest: %s", nameOf(sum.Strongest), nameOf(sum.Weakest))),
		"",
	}

	nameWidth := 0
	for _, c := range set.All() {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}
	for _, avg := range history.CrossUserCategoryAverages(a.entries, set) {
		bar := components.ProgressBar{
			Label:      avg.Category.Name,
			LabelWidth: nameWidth,
			Percent:    avg.Average / wheel.MaxScore,
			Width:      width - 8,
			Fill:       theme.Hex(avg.Category.Color),
		}
		lines = append(lines, bar.View()+fmt.Sprintf(" %4.1f", avg.Average))
	}
	return strings.Join(lines, "\n")
}

func (a *AdminScreen) viewNotify() string {
	var chips []string
	for i, ch := range channels {
		if i == a.channel {
			chips = append(chips, theme.TabActive.Render(ch))
		} else {
			chips = append(chips, theme.TabInactive.Render(ch))
		}
	}

	lines := []string{
		theme.Body.Render("Channel"),
		strings.Join(chips, " "),
		theme.Hint.Render(fmt.Sprintf("%d users reachable", reachable(a.users, channels[a.channel]))),
		"",
	}
	if a.composing {
		lines = append(lines, a.message.View())
	} else {
		lines = append(lines, theme.Hint.Render("Press Enter to write a message. Nothing is sent; the request is recorded."))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
