package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/wheel"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Off", Disabled: true},
		{Label: "One"},
		{Label: "Hidden", Disabled: true},
		{Label: "Two"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("after down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at bottom = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("after up = %d, want 1", m.Selected)
	}
}

func TestMenu_EnterRunsAction(t *testing.T) {
	type picked struct{}
	m := NewMenu([]MenuItem{
		{Label: "Go", Action: func() tea.Cmd {
			return func() tea.Msg { return picked{} }
		}},
	})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(picked); !ok {
		t.Errorf("unexpected message %T", cmd())
	}
	if !strings.Contains(m.View(), "Go") {
		t.Error("view should list the item")
	}
}

func TestTabs_Cycle(t *testing.T) {
	tabs := Tabs{Labels: []string{"A", "B", "C"}}

	tabs, changed := tabs.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if !changed || tabs.Active != 1 {
		t.Fatalf("tab: active=%d changed=%v", tabs.Active, changed)
	}
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if tabs.Active != 2 {
		t.Errorf("shift+tab should wrap, got %d", tabs.Active)
	}
	if _, changed := tabs.Update(tea.KeyPressMsg{Code: 'x', Text: "x"}); changed {
		t.Error("other keys must not switch tabs")
	}
}

func TestSparkline_FixedScale(t *testing.T) {
	got := Sparkline([]float64{1, 10, 5.5, 0, 42})
	want := "▁█▅▁█"
	if got != want {
		t.Errorf("Sparkline = %q, want %q", got, want)
	}
	if Sparkline(nil) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestTrendChart_Empty(t *testing.T) {
	if !strings.Contains(TrendChart{}.View(), "No check-ins") {
		t.Error("empty trend should render a hint")
	}
	view := TrendChart{Points: []history.TrendPoint{
		{Label: "Jan 01", Average: 4},
		{Label: "Jan 08", Average: 6},
	}}.View()
	if !strings.Contains(view, "+2.0") {
		t.Errorf("trend view missing delta: %q", view)
	}
}

func TestWheelChart_ListsEveryCategory(t *testing.T) {
	set := wheel.DefaultCategories()
	scores := wheel.Scores{}
	for _, id := range set.IDs() {
		scores[id] = 7
	}
	view := WheelChart{Set: set, Scores: scores, Selected: "health"}.View()
	for _, c := range set.All() {
		if !strings.Contains(view, c.Name) {
			t.Errorf("wheel chart missing %q", c.Name)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Error("selected category should carry the cursor")
	}
}
