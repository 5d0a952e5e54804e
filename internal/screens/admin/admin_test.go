package admin

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/screens/env/envtest"
	"github.com/abhisek/lifewheel/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(a *AdminScreen, text string) {
	for _, r := range text {
		a.Update(keyPress(r))
	}
}

func newDashboard(t *testing.T) (*AdminScreen, *envtest.Fixture, account.Identity) {
	t.Helper()
	f := envtest.New(t, nil)
	user := f.SignIn(t, "Sara", "09120000002")
	admin := f.SignIn(t, "Boss", envtest.AdminMobile)
	if !admin.IsAdmin() {
		t.Fatal("allow-listed contact should be admin")
	}

	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	f.Seed(t, user.UserID, 4, base)
	f.Seed(t, user.UserID, 8, base.Add(time.Hour))
	f.Seed(t, admin.UserID, 6, base.Add(2*time.Hour))

	a := New(f.Env, admin)
	a.Update(a.Init()())
	if !a.loaded || a.loadErr != "" {
		t.Fatalf("dashboard not loaded: %q", a.loadErr)
	}
	return a, f, admin
}

func TestNonAdminSeesNothing(t *testing.T) {
	f := envtest.New(t, nil)
	user := f.SignIn(t, "Sara", "09120000002")
	a := New(f.Env, user)
	if a.Init() != nil {
		t.Error("non-admin must not load dashboard data")
	}
	if !strings.Contains(a.View(100, 30), "administrators only") {
		t.Error("non-admin should see a refusal")
	}
	a.Update(specialKey(tea.KeyTab))
	if a.tabs.Active != tabSettings {
		t.Error("keys must be ignored for non-admins")
	}
}

func TestLoadsUsersAndEntries(t *testing.T) {
	a, _, _ := newDashboard(t)
	if len(a.users) != 2 {
		t.Errorf("users = %d, want 2", len(a.users))
	}
	if len(a.entries) != 3 {
		t.Errorf("entries = %d, want 3", len(a.entries))
	}

	a.Update(specialKey(tea.KeyTab))
	view := a.View(120, 40)
	for _, want := range []string{"Sara", "09120000002", "ADMIN", "USER"} {
		if !strings.Contains(view, want) {
			t.Errorf("users tab missing %q", want)
		}
	}

	a.Update(specialKey(tea.KeyTab))
	view = a.View(120, 40)
	if !strings.Contains(view, "3 assessments by 2 users") {
		t.Errorf("stats summary missing from %q", view)
	}
	if !strings.Contains(view, "Work & Career") {
		t.Error("stats should chart every category")
	}
}

func TestEditAndSaveSettings(t *testing.T) {
	a, f, _ := newDashboard(t)

	a.Update(specialKey(tea.KeyDown)) // low advice
	a.Update(specialKey(tea.KeyEnter))
	if !a.CapturesInput() {
		t.Fatal("editing should capture input")
	}
	a.editor.SetValue("")
	typeText(a, "Pick one area this week.")
	a.Update(specialKey(tea.KeyEnter))

	if a.CapturesInput() {
		t.Fatal("enter should apply the edit")
	}
	if a.draft.AdviceTemplateLow != "Pick one area this week." {
		t.Fatalf("draft = %q", a.draft.AdviceTemplateLow)
	}
	if !a.Dirty() {
		t.Error("draft should be dirty before saving")
	}
	if f.Env.Settings.AdviceTemplateLow == a.draft.AdviceTemplateLow {
		t.Error("active settings must not change before save")
	}

	_, cmd := a.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+s should save")
	}
	a.Update(cmd())

	if a.Dirty() {
		t.Error("saved draft should not be dirty")
	}
	if f.Env.Settings.AdviceTemplateLow != "Pick one area this week." {
		t.Error("env settings should be replaced after save")
	}
	stored, err := f.Env.SettingsDB.Get(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stored.AdviceTemplateLow != "Pick one area this week." {
		t.Errorf("stored low template = %q", stored.AdviceTemplateLow)
	}
	if stored.IntroText != advice.DefaultSettings().IntroText {
		t.Error("untouched slots keep their text")
	}
}

func TestEditRejectsBlankAndCancels(t *testing.T) {
	a, _, _ := newDashboard(t)
	before := a.draft

	a.Update(specialKey(tea.KeyEnter))
	a.editor.SetValue("   ")
	a.Update(specialKey(tea.KeyEnter))
	if !a.editing || a.editor.Err == "" {
		t.Error("blank text should be rejected")
	}

	a.Update(specialKey(tea.KeyEscape))
	if a.editing {
		t.Error("esc should cancel editing")
	}
	if a.draft != before {
		t.Error("cancelled edit must not change the draft")
	}
}

func TestRestoreDefaultSlot(t *testing.T) {
	a, f, _ := newDashboard(t)
	f.Env.Settings = f.Env.Settings.With(advice.SlotIntro, "custom")
	a.draft = f.Env.Settings

	a.Update(keyPress('d'))
	if a.draft.IntroText != advice.DefaultSettings().IntroText {
		t.Error("d should restore the slot default")
	}
}

func TestNotifyRecordsBroadcast(t *testing.T) {
	a, f, _ := newDashboard(t)
	for i := 0; i < tabNotify; i++ {
		a.Update(specialKey(tea.KeyTab))
	}

	a.Update(specialKey(tea.KeyRight)) // sms
	a.Update(specialKey(tea.KeyEnter))
	if !a.CapturesInput() {
		t.Fatal("composing should capture input")
	}

	_, cmd := a.Update(specialKey(tea.KeyEnter))
	if cmd != nil || a.message.Err == "" {
		t.Error("empty message must be rejected")
	}

	typeText(a, "New tips are out")
	_, cmd = a.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a record command")
	}
	a.Update(cmd())
	if !strings.Contains(a.notice, "sms for 2 recipients") {
		t.Errorf("notice = %q", a.notice)
	}

	list, err := f.Env.Deliveries.List(context.Background(), store.DeliveryBroadcast, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Channel != "sms" || list[0].Message != "New tips are out" || list[0].Recipients != 2 {
		t.Errorf("unexpected broadcast records %+v", list)
	}
}

func TestReachable(t *testing.T) {
	users := []store.User{
		{Contact: "1", Email: "a@example.com"},
		{Contact: "2"},
		{Contact: "", Email: "c@example.com"},
	}
	if got := reachable(users, "email"); got != 1 {
		t.Errorf("email reachable = %d, want 1", got)
	}
	if got := reachable(users, "whatsapp"); got != 2 {
		t.Errorf("whatsapp reachable = %d, want 2", got)
	}
}
