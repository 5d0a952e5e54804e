// Package register is the lead form shown before anything else.
package register

import (
	"context"
	"errors"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/env"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/ui/layout"
	"github.com/abhisek/lifewheel/internal/ui/theme"
)

const (
	fieldName = iota
	fieldMobile
	fieldAge
	fieldEmail
	fieldCount
)

// registeredMsg carries the outcome of the registration call.
type registeredMsg struct {
	Identity account.Identity
	Err      error
}

// RegisterScreen collects name, mobile, age and an optional email.
type RegisterScreen struct {
	env     *env.Env
	next    func(account.Identity) screen.Screen
	fields  [fieldCount]components.TextInput
	focus   int
	pending bool
	err     string
}

var (
	_ screen.Screen        = (*RegisterScreen)(nil)
	_ screen.InputCapturer = (*RegisterScreen)(nil)
)

// New creates the form. next builds the screen shown once the user is
// registered.
func New(e *env.Env, next func(account.Identity) screen.Screen) *RegisterScreen {
	r := &RegisterScreen{env: e, next: next}
	r.fields[fieldName] = components.NewTextInput("Name", "Your full name", false, 80)
	r.fields[fieldMobile] = components.NewTextInput("Mobile", "e.g. 0912 000 0000", false, 20)
	r.fields[fieldAge] = components.NewTextInput("Age", "10 to 100", true, 3)
	r.fields[fieldEmail] = components.NewTextInput("Email", "optional", false, 120)
	r.fields[fieldName].Focus()
	return r
}

func (r *RegisterScreen) Init() tea.Cmd {
	return nil
}

func (r *RegisterScreen) Title() string {
	return "Sign in"
}

func (r *RegisterScreen) CapturesInput() bool {
	return true
}

func (r *RegisterScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (r *RegisterScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registeredMsg:
		return r.handleRegistered(msg)

	case tea.KeyPressMsg:
		if r.pending {
			return r, nil
		}
		switch msg.String() {
		case "tab", "down":
			return r, r.moveFocus(1)
		case "shift+tab", "up":
			return r, r.moveFocus(-1)
		case "enter":
			if r.focus < fieldCount-1 {
				return r, r.moveFocus(1)
			}
			return r, r.submit()
		}
	}

	var cmd tea.Cmd
	r.fields[r.focus], cmd = r.fields[r.focus].Update(msg)
	return r, cmd
}

func (r *RegisterScreen) moveFocus(delta int) tea.Cmd {
	r.fields[r.focus].Blur()
	r.focus = (r.focus + delta + fieldCount) % fieldCount
	return r.fields[r.focus].Focus()
}

// input reads the form. A blank or malformed age reads as 0 and fails
// validation.
func (r *RegisterScreen) input() account.RegisterInput {
	age, _ := strconv.Atoi(strings.TrimSpace(r.fields[fieldAge].Value()))
	return account.RegisterInput{
		Name:   r.fields[fieldName].Value(),
		Mobile: r.fields[fieldMobile].Value(),
		Age:    age,
		Email:  r.fields[fieldEmail].Value(),
	}
}

func (r *RegisterScreen) submit() tea.Cmd {
	in := r.input()
	if err := in.Normalize().Validate(); err != nil {
		r.err = describe(err)
		return nil
	}

	r.err = ""
	r.pending = true
	accounts := r.env.Accounts
	return func() tea.Msg {
		id, err := accounts.Register(context.Background(), in)
		return registeredMsg{Identity: id, Err: err}
	}
}

func (r *RegisterScreen) handleRegistered(msg registeredMsg) (screen.Screen, tea.Cmd) {
	r.pending = false
	if msg.Err != nil {
		r.env.Log().Error("registration failed", "error", msg.Err)
		r.err = describe(msg.Err)
		return r, nil
	}

	r.env.Identity = msg.Identity
	next := r.next(msg.Identity)
	return r, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// describe turns an error into a line for the form.
func describe(err error) string {
	if errors.Is(err, account.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), account.ErrInvalidInput.Error()+": ")
	}
	return "Could not save your details. Please try again."
}

func (r *RegisterScreen) View(width, height int) string {
	var lines []string
	lines = append(lines,
		theme.Title.Render("Welcome to the Wheel of Life"),
		theme.Subtitle.Render("Tell us a little about yourself to begin."),
		"",
	)
	for i := range r.fields {
		lines = append(lines, r.fields[i].View())
	}
	lines = append(lines, "")

	switch {
	case r.pending:
		lines = append(lines, theme.Hint.Render("Saving…"))
	case r.err != "":
		lines = append(lines, theme.ErrorText.Render("✗ "+r.err))
	default:
		lines = append(lines, theme.Hint.Render("Returning? Enter the same mobile number."))
	}

	card := theme.Card.Width(min(width-4, 72)).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
