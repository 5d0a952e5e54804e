package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// WheelChart renders one colored bar per category, scaled to the
// 1 to 10 score range. It is the terminal stand-in for the radial
// wheel drawing.
type WheelChart struct {
	Set      wheel.CategorySet
	Scores   wheel.Scores
	Selected string
	Width    int
}

// View renders the chart in display order.
func (w WheelChart) View() string {
	nameWidth := 0
	for _, c := range w.Set.All() {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}
	width := w.Width
	if width <= 0 {
		width = 60
	}

	var b strings.Builder
	for _, c := range w.Set.All() {
		v := w.Scores[c.ID]
		cursor := "  "
		if c.ID == w.Selected {
			cursor = theme.Selected.Render("▸ ")
		}

		bar := ProgressBar{
			Label:      c.Name,
			LabelWidth: nameWidth,
			Percent:    float64(v) / float64(wheel.MaxScore),
			Width:      width - 8,
			Fill:       theme.Hex(c.Color),
		}
		score := lipgloss.NewStyle().Foreground(theme.Text).Bold(c.ID == w.Selected).
			Render(fmt.Sprintf("%3d", v))

		b.WriteString(cursor + bar.View() + " " + score + "\n")
	}
	return b.String()
}

// LabelText is the human wording of a classification.
func LabelText(label wheel.Classification) string {
	switch label {
	case wheel.Low:
		return "needs attention"
	case wheel.Unbalanced:
		return "unbalanced"
	case wheel.BalancedOrHigh:
		return "balanced"
	}
	return ""
}

// LabelBadge renders LabelText in the label's accent color.
func LabelBadge(label wheel.Classification) string {
	text := LabelText(label)
	if text == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.LabelColor(label)).Bold(true).Render(text)
}
