// Package admin is the administrator dashboard: copy settings, the
// user list, cross-user statistics and simulated notifications.
package admin

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/wheel"
)

const (
	tabSettings = iota
	tabUsers
	tabStats
	tabNotify
)

// Notification channels. Nothing is delivered; a record is kept.
var channels = []string{"email", "sms", "whatsapp"}

// AdminScreen is reachable only for admin identities.
type AdminScreen struct {
	env      *env.Env
	identity account.Identity
	tabs     components.Tabs

	loaded  bool
	loadErr string
	users   []store.User
	entries []wheel.Entry

	// Settings tab.
	draft   advice.Settings
	slot    int
	editing bool
	editor  components.TextInput
	saving  bool

	// Users tab.
	userCursor int

	// Notify tab.
	channel   int
	composing bool
	message   components.TextInput

	notice string
}

var (
	_ screen.Screen          = (*AdminScreen)(nil)
	_ screen.KeyHintProvider = (*AdminScreen)(nil)
	_ screen.InputCapturer   = (*AdminScreen)(nil)
)

// New creates the dashboard for identity.
func New(e *env.Env, identity account.Identity) *AdminScreen {
	return &AdminScreen{
		env:      e,
		identity: identity,
		tabs:     components.Tabs{Labels: []string{"Settings", "Users", "Stats", "Notify"}},
		draft:    e.Settings,
		editor:   components.NewTextInput("Text", "", false, 2000),
		message:  components.NewTextInput("Message", "What should everyone hear?", false, 500),
	}
}

func (a *AdminScreen) Init() tea.Cmd {
	if !a.identity.IsAdmin() {
		return nil
	}
	users, history := a.env.Users, a.env.History
	return func() tea.Msg {
		var msg dashboardLoadedMsg
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			var err error
			msg.Users, err = users.List(ctx)
			return err
		})
		g.Go(func() error {
			var err error
			msg.Entries, err = history.ListAll(ctx)
			return err
		})
		msg.Err = g.Wait()
		return msg
	}
}

func (a *AdminScreen) Title() string {
	return "Admin dashboard"
}

func (a *AdminScreen) CapturesInput() bool {
	return a.editing || a.composing
}

func (a *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		a.loaded = true
		if msg.Err != nil {
			a.env.Log().Error("load dashboard", "error", msg.Err)
			a.loadErr = msg.Err.Error()
			return a, nil
		}
		a.users, a.entries = msg.Users, msg.Entries
		return a, nil

	case settingsSavedMsg:
		a.saving = false
		if msg.Err != nil {
			a.env.Log().Error("save settings", "error", msg.Err)
			a.notice = "Saving failed: " + msg.Err.Error()
			return a, nil
		}
		a.env.Settings = msg.Settings
		a.env.Log().Info("settings saved", "by", a.identity.UserID)
		a.notice = "Settings saved."
		return a, nil

	case broadcastRecordedMsg:
		if msg.Err != nil {
			a.env.Log().Error("record broadcast", "error", msg.Err)
			a.notice = "Could not record the notification."
			return a, nil
		}
		a.notice = fmt.Sprintf("Notification queued on %s for %d recipients.", msg.Channel, msg.Recipients)
		return a, nil

	case tea.KeyMsg:
		if !a.identity.IsAdmin() {
			return a, nil
		}
		return a.handleKey(msg)
	}

	return a, a.updateInputs(msg)
}

func (a *AdminScreen) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.editing:
		a.editor, cmd = a.editor.Update(msg)
	case a.composing:
		a.message, cmd = a.message.Update(msg)
	}
	return cmd
}

func (a *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if a.editing {
		return a.handleEditorKey(msg)
	}
	if a.composing {
		return a.handleComposeKey(msg)
	}

	var switched bool
	if a.tabs, switched = a.tabs.Update(msg); switched {
		a.notice = ""
		return a, nil
	}

	switch a.tabs.Active {
	case tabSettings:
		return a.handleSettingsKey(msg)
	case tabUsers:
		switch msg.String() {
		case "up", "k":
			a.userCursor = max(0, a.userCursor-1)
		case "down", "j":
			a.userCursor = max(0, min(len(a.users)-1, a.userCursor+1))
		}
	case tabNotify:
		return a.handleNotifyKey(msg)
	}
	return a, nil
}

func (a *AdminScreen) handleSettingsKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		a.slot = max(0, a.slot-1)
	case "down", "j":
		a.slot = min(len(advice.Slots)-1, a.slot+1)
	case "enter":
		a.editing = true
		a.editor.Err = ""
		a.editor.SetValue(a.draft.Get(advice.Slots[a.slot]))
		return a, a.editor.Focus()
	case "d":
		a.draft = a.draft.With(advice.Slots[a.slot], advice.DefaultSettings().Get(advice.Slots[a.slot]))
	case "ctrl+s":
		return a, a.save()
	}
	return a, nil
}

func (a *AdminScreen) handleEditorKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.editing = false
		a.editor.Blur()
		return a, nil
	case "enter":
		text := strings.TrimSpace(a.editor.Value())
		if text == "" {
			a.editor.Err = "must not be empty"
			return a, nil
		}
		a.draft = a.draft.With(advice.Slots[a.slot], text)
		a.editing = false
		a.editor.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	return a, cmd
}

// Dirty reports whether the draft differs from the active settings.
func (a *AdminScreen) Dirty() bool {
	return a.draft != a.env.Settings
}

func (a *AdminScreen) save() tea.Cmd {
	if a.saving {
		return nil
	}
	if err := a.draft.Validate(); err != nil {
		a.notice = err.Error()
		return nil
	}
	a.saving = true
	repo, draft := a.env.SettingsDB, a.draft
	return func() tea.Msg {
		return settingsSavedMsg{Settings: draft, Err: repo.Put(context.Background(), draft)}
	}
}

func (a *AdminScreen) handleNotifyKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		a.channel = (a.channel - 1 + len(channels)) % len(channels)
	case "right", "l":
		a.channel = (a.channel + 1) % len(channels)
	case "enter", "m":
		a.composing = true
		a.message.Err = ""
		return a, a.message.Focus()
	}
	return a, nil
}

func (a *AdminScreen) handleComposeKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.composing = false
		a.message.Blur()
		return a, nil
	case "enter":
		text := strings.TrimSpace(a.message.Value())
		if text == "" {
			a.message.Err = "message is empty"
			return a, nil
		}
		a.composing = false
		a.message.Blur()
		a.message.SetValue("")
		return a, a.broadcast(channels[a.channel], text)
	}
	var cmd tea.Cmd
	a.message, cmd = a.message.Update(msg)
	return a, cmd
}

// reachable counts users that can be contacted on channel.
func reachable(users []store.User, channel string) int {
	n := 0
	for _, u := range users {
		if channel == "email" && u.Email == "" {
			continue
		}
		if u.Contact == "" {
			continue
		}
		n++
	}
	return n
}

func (a *AdminScreen) broadcast(channel, text string) tea.Cmd {
	d := store.Delivery{
		Kind:       store.DeliveryBroadcast,
		Channel:    channel,
		UserID:     a.identity.UserID,
		Recipients: reachable(a.users, channel),
		Message:    text,
	}
	repo := a.env.Deliveries
	return func() tea.Msg {
		return broadcastRecordedMsg{
			Channel:    channel,
			Recipients: d.Recipients,
			Err:        repo.Record(context.Background(), d),
		}
	}
}
