package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/ui/theme"
)

// Tabs is a horizontal tab strip switched with tab and shift+tab.
type Tabs struct {
	Labels []string
	Active int
}

// Update cycles the active tab.
func (t Tabs) Update(msg tea.Msg) (Tabs, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(t.Labels) == 0 {
		return t, false
	}
	switch kmsg.String() {
	case "tab":
		t.Active = (t.Active + 1) % len(t.Labels)
		return t, true
	case "shift+tab":
		t.Active = (t.Active - 1 + len(t.Labels)) % len(t.Labels)
		return t, true
	}
	return t, false
}

// View renders the strip.
func (t Tabs) View() string {
	parts := make([]string, len(t.Labels))
	for i, l := range t.Labels {
		if i == t.Active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return strings.Join(parts, " ")
}
