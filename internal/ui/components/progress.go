package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
)

// ProgressBar displays a horizontal bar filled to Percent (0 to 1).
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

// NewProgressBar creates a bar filled in the secondary color.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))
	empty := barWidth - filled

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}
