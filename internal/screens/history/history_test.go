package history

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screens/env/envtest"
)

func TestLoadsOnlyOwnEntriesNewestFirst(t *testing.T) {
	f := envtest.New(t, nil)
	other := f.SignIn(t, "Other", "09120000009")
	me := f.SignIn(t, "Sara", "09120000002")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	older := f.Seed(t, me.UserID, 3, base)
	newer := f.Seed(t, me.UserID, 8, base.Add(48*time.Hour))
	f.Seed(t, other.UserID, 5, base.Add(time.Hour))

	s := New(f.Env, me)
	msg := s.Init()()
	s.Update(msg)

	if !s.loaded {
		t.Fatal("screen should be loaded")
	}
	if len(s.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(s.entries))
	}
	if s.entries[0].ID != newer.ID || s.entries[1].ID != older.ID {
		t.Error("entries should be newest first")
	}

	view := s.View(100, 40)
	if !strings.Contains(view, "needs attention") || !strings.Contains(view, "balanced") {
		t.Error("view should label each entry")
	}
	if !strings.Contains(view, "+5.0") {
		t.Error("trend delta should be shown")
	}
}

func TestEmptyHistory(t *testing.T) {
	f := envtest.New(t, nil)
	me := f.SignIn(t, "Sara", "09120000002")

	s := New(f.Env, me)
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("unloaded screen should say loading")
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No check-ins yet") {
		t.Error("empty history should prompt for a first assessment")
	}
}

func TestLoadError(t *testing.T) {
	f := envtest.New(t, nil)
	s := New(f.Env, f.SignIn(t, "Sara", "09120000002"))
	s.Update(historyLoadedMsg{Err: errors.New("disk gone")})
	if !strings.Contains(s.View(80, 24), "disk gone") {
		t.Error("load error should be displayed")
	}
}

func TestNavigateAndExpand(t *testing.T) {
	f := envtest.New(t, nil)
	me := f.SignIn(t, "Sara", "09120000002")
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	f.Seed(t, me.UserID, 4, base)
	f.Seed(t, me.UserID, 6, base.Add(time.Hour))

	s := New(f.Env, me)
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.selected != 0 {
		t.Errorf("up at top should stay, got %d", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("down at bottom should stay, got %d", s.selected)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !s.expanded[1] {
		t.Fatal("enter should expand the selected entry")
	}
	if !strings.Contains(s.View(100, 40), "Work & Career") {
		t.Error("expanded entry should show category scores")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.expanded[1] {
		t.Error("second enter should collapse")
	}
}

func TestEscPops(t *testing.T) {
	f := envtest.New(t, nil)
	s := New(f.Env, f.SignIn(t, "Sara", "09120000002"))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
