package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/ui/theme"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values on the fixed 1 to 10 score scale, so two
// trends are visually comparable.
func Sparkline(values []float64) string {
	var b strings.Builder
	for _, v := range values {
		frac := (v - wheel.MinScore) / (wheel.MaxScore - wheel.MinScore)
		i := int(frac*float64(len(sparkRunes)-1) + 0.5)
		b.WriteRune(sparkRunes[max(0, min(i, len(sparkRunes)-1))])
	}
	return b.String()
}

// TrendChart renders a trend as one labelled bar per point, oldest on
// top, followed by the overall delta.
type TrendChart struct {
	Points []history.TrendPoint
	Width  int
}

// View renders the chart. An empty trend renders a hint.
func (t TrendChart) View() string {
	if len(t.Points) == 0 {
		return theme.Hint.Render("No check-ins yet.")
	}

	width := t.Width
	if width <= 0 {
		width = 50
	}

	var b strings.Builder
	for _, p := range t.Points {
		bar := ProgressBar{
			Label:      p.Label,
			LabelWidth: 8,
			Percent:    p.Average / wheel.MaxScore,
			Width:      width - 6,
			Fill:       theme.Secondary,
		}
		b.WriteString(bar.View() + lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(" %4.1f", p.Average)) + "\n")
	}

	values := make([]float64, len(t.Points))
	for i, p := range t.Points {
		values[i] = p.Average
	}
	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Secondary).Render(Sparkline(values)) + "  " + DeltaLabel(history.Delta(t.Points)))
	return b.String()
}

// DeltaLabel renders a signed change, green when rising.
func DeltaLabel(delta float64) string {
	switch {
	case delta > 0.05:
		return lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("▲ +%.1f", delta))
	case delta < -0.05:
		return lipgloss.NewStyle().Foreground(theme.Error).Render(fmt.Sprintf("▼ %.1f", delta))
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("● steady")
}
