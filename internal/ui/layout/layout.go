package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
)

// The wheel chart and the trend list need this much room.
const (
	MinWidth  = 80
	MinHeight = 24
)

const hintGap = "   "

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Frame is the chrome around the active screen: a bar with the app
// name, the screen title and who is signed in, and a bar of key hints.
type Frame struct {
	Title string
	Who   string
	Hints []KeyHint
}

// TooSmall reports whether the terminal cannot fit the wheel, and if so
// returns the message to show instead.
func TooSmall(width, height int) (string, bool) {
	var short []string
	if width < MinWidth {
		short = append(short, fmt.Sprintf("%d more columns", MinWidth-width))
	}
	if height < MinHeight {
		short = append(short, fmt.Sprintf("%d more rows", MinHeight-height))
	}
	if len(short) == 0 {
		return "", false
	}
	msg := lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("The wheel needs more room.\n\nIt needs %s (%d x %d at least).",
			strings.Join(short, " and "), MinWidth, MinHeight))
	return msg, true
}

func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// Header renders the top bar. The title sits in the middle unless the
// sides leave no room for it, in which case it follows the app name.
func (f Frame) Header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  ◎ Life Wheel")
	title := lipgloss.NewStyle().Foreground(theme.Text).Render(f.Title)
	who := lipgloss.NewStyle().Foreground(theme.Accent).Render(f.Who)

	inner := max(0, width-4)
	used := lipgloss.Width(left) + lipgloss.Width(title) + lipgloss.Width(who)
	before := max(1, (inner-lipgloss.Width(title))/2-lipgloss.Width(left))
	after := inner - used - before
	if after < 1 {
		before = 2
		after = max(1, inner-used-before)
	}
	return bar(left+strings.Repeat(" ", before)+title+strings.Repeat(" ", after)+who, width)
}

// Footer renders the key hints that fit on one line, in order. Hints
// that would overflow are left out.
func (f Frame) Footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(0, width-6)
	var parts []string
	used := 0
	for _, h := range f.Hints {
		part := key.Render(h.Key) + " " + desc.Render(h.Description)
		w := lipgloss.Width(part)
		if len(parts) > 0 {
			w += len(hintGap)
		}
		if used+w > room {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return bar("  "+strings.Join(parts, hintGap), width)
}

// ContentHeight is what is left for the screen once both bars are drawn.
func (f Frame) ContentHeight(width, height int) int {
	return max(0, height-lipgloss.Height(f.Header(width))-lipgloss.Height(f.Footer(width)))
}

// Render stacks header, content and footer, padding content to fill
// the height between the bars.
func (f Frame) Render(content string, width, height int) string {
	header, footer := f.Header(width), f.Footer(width)
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))).
		Render(content)
	return header + "\n" + body + "\n" + footer
}
