package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func TestPushAndPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(PushScreenMsg{Screen: s2})

	if r.Depth() != 2 || r.Active().Title() != "second" {
		t.Fatalf("after push: depth %d, active %q", r.Depth(), r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}

	r.Update(PopScreenMsg{})
	if r.Depth() != 1 || r.Active().Title() != "first" {
		t.Fatalf("after pop: depth %d, active %q", r.Depth(), r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})

	s3 := &stubScreen{title: "third"}
	r.Update(ReplaceScreenMsg{Screen: s3})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
	if !s3.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReset(t *testing.T) {
	r := New(&stubScreen{title: "first"})
	r.Push(&stubScreen{title: "second"})
	r.Push(&stubScreen{title: "third"})

	login := &stubScreen{title: "login"}
	r.Update(ResetScreenMsg{Screen: login})

	if r.Depth() != 1 || r.Active() != login {
		t.Fatalf("expected only login on stack, depth %d", r.Depth())
	}
	if !login.initRan {
		t.Error("expected Init() to run on reset screen")
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "bottom"}
	top := &stubScreen{title: "top"}
	r := New(bottom)
	r.Push(top)

	r.Update("hello")

	if len(top.got) != 1 || len(bottom.got) != 0 {
		t.Fatalf("message routed wrong: top %v, bottom %v", top.got, bottom.got)
	}
	if r.View(80, 24) != "top" {
		t.Errorf("View() = %q", r.View(80, 24))
	}
}

type resultMsg struct{}

// ownerScreen claims resultMsg.
type ownerScreen struct {
	stubScreen
}

func (o *ownerScreen) Owns(msg tea.Msg) bool {
	_, ok := msg.(resultMsg)
	return ok
}

func TestUpdateDeliversOwnedMessagesUnderneath(t *testing.T) {
	owner := &ownerScreen{stubScreen{title: "owner"}}
	top := &stubScreen{title: "top"}
	r := New(owner)
	r.Push(top)

	r.Update(resultMsg{})
	r.Update("key")

	if len(owner.got) != 1 || len(top.got) != 1 {
		t.Fatalf("owner %v, top %v", owner.got, top.got)
	}
	if _, ok := owner.got[0].(resultMsg); !ok {
		t.Errorf("owner got %T", owner.got[0])
	}
	if top.got[0] != "key" {
		t.Errorf("top got %v", top.got[0])
	}
}
