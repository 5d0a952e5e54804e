// Package assessment is the TUI for one wheel check-in: intro, rating,
// processing and result.
package assessment

import (
	"context"
	"net/mail"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lifewheel/internal/account"
	asmt "github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/narrative"
	"github.com/abhisek/lifewheel/internal/router"
	"github.com/abhisek/lifewheel/internal/screen"
	"github.com/abhisek/lifewheel/internal/screens/env"
	historyscreen "github.com/abhisek/lifewheel/internal/screens/history"
	"github.com/abhisek/lifewheel/internal/store"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/wheel"
)

const spinnerInterval = 120 * time.Millisecond

// AssessmentScreen drives an asmt.Session from key presses and
// delivers its asynchronous work as ticketed messages.
type AssessmentScreen struct {
	env      *env.Env
	identity account.Identity
	session  *asmt.Session
	loadErr  error

	spinning  bool
	spinFrame int

	// Result step extras.
	showShare bool
	emailing  bool
	email     components.TextInput
	notice    string
}

var (
	_ screen.Screen          = (*AssessmentScreen)(nil)
	_ screen.KeyHintProvider = (*AssessmentScreen)(nil)
	_ screen.InputCapturer   = (*AssessmentScreen)(nil)
	_ screen.MessageOwner    = (*AssessmentScreen)(nil)
)

// New creates the screen for identity. The session starts once the
// user's past entries are loaded.
func New(e *env.Env, identity account.Identity) *AssessmentScreen {
	return &AssessmentScreen{
		env:      e,
		identity: identity,
		email:    components.NewTextInput("Email", "where should we send it?", false, 120),
	}
}

func (s *AssessmentScreen) Init() tea.Cmd {
	repo, userID := s.env.History, s.identity.UserID
	return func() tea.Msg {
		entries, err := repo.ListByUser(context.Background(), userID)
		return pastLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *AssessmentScreen) Title() string {
	return "Assessment"
}

func (s *AssessmentScreen) CapturesInput() bool {
	return s.emailing
}

// Owns claims the screen's asynchronous results so they arrive even
// while another screen is pushed on top.
func (s *AssessmentScreen) Owns(msg tea.Msg) bool {
	switch msg.(type) {
	case pastLoadedMsg, settleMsg, spinnerTickMsg, persistedMsg,
		narrativeMsg, narrativeStoredMsg, reportRecordedMsg:
		return true
	}
	return false
}

func (s *AssessmentScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pastLoadedMsg:
		return s.handlePastLoaded(msg)
	case settleMsg:
		return s.handleSettle(msg)
	case spinnerTickMsg:
		return s.handleSpinner()
	case persistedMsg:
		return s.handlePersisted(msg)
	case narrativeMsg:
		return s.handleNarrative(msg)
	case narrativeStoredMsg:
		if msg.Err != nil {
			s.env.Log().Warn("store narrative", "entry", msg.EntryID, "error", msg.Err)
		}
		s.session.MarkNarrativeStored(msg.Ticket, msg.Err)
		return s, nil
	case reportRecordedMsg:
		if msg.Err != nil {
			s.env.Log().Error("record report request", "error", msg.Err)
			s.notice = "Could not queue the report. Please try again."
		} else {
			s.notice = "Report request recorded for " + msg.Recipient + "."
		}
		return s, nil
	case tea.KeyMsg:
		if s.session == nil {
			return s, nil
		}
		return s.handleKey(msg)
	}

	if s.emailing {
		var cmd tea.Cmd
		s.email, cmd = s.email.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AssessmentScreen) handlePastLoaded(msg pastLoadedMsg) (screen.Screen, tea.Cmd) {
	past := msg.Entries
	if msg.Err != nil {
		// The check-in still works; only the comparison is lost.
		s.env.Log().Warn("load past entries", "user_id", s.identity.UserID, "error", msg.Err)
		s.loadErr = msg.Err
		past = nil
	}
	s.session = asmt.New(s.identity, s.env.Categories, s.env.Settings, past)
	return s, nil
}

func (s *AssessmentScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.session.Step() {
	case asmt.StepIntro:
		if msg.String() == "enter" {
			if err := s.session.BeginRating(); err == nil {
				s.session.SelectOffset(0)
			}
		}
		return s, nil

	case asmt.StepRating:
		return s.handleRatingKey(msg)

	case asmt.StepResult:
		if s.emailing {
			return s.handleEmailKey(msg)
		}
		return s.handleResultKey(msg)
	}
	return s, nil
}

func (s *AssessmentScreen) handleRatingKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "right", "l", "tab":
		s.session.SelectOffset(1)
	case "left", "h", "shift+tab":
		s.session.SelectOffset(-1)
	case "up", "k", "+", "=":
		s.session.Adjust(1)
	case "down", "j", "-":
		s.session.Adjust(-1)
	case "enter":
		return s.beginProcessing()
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			v := int(key[0] - '0')
			if v == 0 {
				v = wheel.MaxScore
			}
			s.session.SetScore(v)
		}
	}
	return s, nil
}

func (s *AssessmentScreen) beginProcessing() (screen.Screen, tea.Cmd) {
	ticket, ok := s.session.BeginProcessing()
	if !ok {
		return s, nil
	}
	settle := s.env.Assessment.SettleDuration
	return s, tea.Batch(
		tea.Tick(settle, func(time.Time) tea.Msg { return settleMsg{Ticket: ticket} }),
		s.startSpinner(),
	)
}

func (s *AssessmentScreen) startSpinner() tea.Cmd {
	if s.spinning {
		return nil
	}
	s.spinning = true
	return spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *AssessmentScreen) handleSpinner() (screen.Screen, tea.Cmd) {
	s.spinFrame++
	busy := s.session != nil && (s.session.Step() == asmt.StepProcessing ||
		(s.session.Result() != nil && s.session.Result().NarrativePending))
	if !busy {
		s.spinning = false
		return s, nil
	}
	return s, spinnerTick()
}

func (s *AssessmentScreen) handleSettle(msg settleMsg) (screen.Screen, tea.Cmd) {
	res, ok := s.session.Complete(msg.Ticket)
	if !ok {
		return s, nil
	}

	s.showShare = false
	s.notice = ""
	s.env.Metrics.AssessmentCompleted(string(res.Classification.Label))
	s.env.Log().Info("assessment completed",
		"user_id", s.identity.UserID, "entry", res.Entry.ID,
		"label", res.Classification.Label, "mean", res.Classification.Mean)

	// Earlier passes whose save failed get another chance with this one.
	return s, tea.Batch(
		s.persistCmd(msg.Ticket),
		s.retryCmd(),
		s.narrativeCmd(msg.Ticket, res.Entry, res.Previous),
		s.startSpinner(),
	)
}

// persistCmd writes pass t's entry. It is nil while a write for the
// same entry is in flight or once it is saved.
func (s *AssessmentScreen) persistCmd(t asmt.Ticket) tea.Cmd {
	entry, ok := s.session.StartSave(t)
	if !ok {
		return nil
	}
	repo := s.env.History
	return func() tea.Msg {
		return persistedMsg{Ticket: t, Err: repo.Append(context.Background(), entry)}
	}
}

// retryCmd rewrites every entry whose last save failed.
func (s *AssessmentScreen) retryCmd() tea.Cmd {
	var cmds []tea.Cmd
	for _, t := range s.session.Retryable() {
		cmds = append(cmds, s.persistCmd(t))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (s *AssessmentScreen) narrativeCmd(t asmt.Ticket, entry wheel.Entry, previous *wheel.Entry) tea.Cmd {
	svc := s.env.Narratives
	return func() tea.Msg {
		return narrativeMsg{Ticket: t, Text: svc.Generate(context.Background(), entry, previous)}
	}
}

func (s *AssessmentScreen) handlePersisted(msg persistedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.env.Metrics.PersistFailed()
		s.env.Log().Error("persist entry", "user_id", s.identity.UserID, "error", msg.Err)
	}
	s.session.MarkPersisted(msg.Ticket, msg.Err)
	return s, s.storeNarrativeCmd()
}

func (s *AssessmentScreen) handleNarrative(msg narrativeMsg) (screen.Screen, tea.Cmd) {
	s.session.ApplyNarrative(msg.Ticket, msg.Text)
	kept := msg.Text
	if narrative.IsApology(kept) {
		kept = ""
	}
	s.session.KeepNarrative(msg.Ticket, kept)
	return s, s.storeNarrativeCmd()
}

// storeNarrativeCmd attaches kept narratives to entries that are
// already saved, stale passes included. Apologies are shown but never
// stored.
func (s *AssessmentScreen) storeNarrativeCmd() tea.Cmd {
	writes := s.session.NarrativeWrites()
	if len(writes) == 0 {
		return nil
	}
	repo := s.env.History
	cmds := make([]tea.Cmd, 0, len(writes))
	for _, w := range writes {
		cmds = append(cmds, func() tea.Msg {
			return narrativeStoredMsg{
				Ticket:  w.Ticket,
				EntryID: w.EntryID,
				Err:     repo.AppendNarrative(context.Background(), w.EntryID, w.Text),
			}
		})
	}
	return tea.Batch(cmds...)
}

func (s *AssessmentScreen) handleResultKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		return s, s.retryCmd()
	case "n":
		if s.session.Redo() {
			s.session.SelectOffset(0)
			s.notice = ""
			s.showShare = false
		}
		return s, nil
	case "s":
		s.showShare = !s.showShare
		return s, nil
	case "e":
		s.emailing = true
		s.email.Err = ""
		if s.email.Value() == "" {
			s.email.SetValue(s.identity.Email)
		}
		return s, s.email.Focus()
	case "h":
		hs := historyscreen.New(s.env, s.identity)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: hs} }
	}
	return s, nil
}

func (s *AssessmentScreen) handleEmailKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.emailing = false
		s.email.Blur()
		return s, nil
	case "enter":
		addr := strings.TrimSpace(s.email.Value())
		if _, err := mail.ParseAddress(addr); err != nil {
			s.email.Err = "not a valid address"
			return s, nil
		}
		s.emailing = false
		s.email.Blur()
		return s, s.recordReportCmd(addr)
	}

	var cmd tea.Cmd
	s.email, cmd = s.email.Update(msg)
	return s, cmd
}

func (s *AssessmentScreen) recordReportCmd(addr string) tea.Cmd {
	res := s.session.Result()
	if res == nil {
		return nil
	}
	d := store.Delivery{
		Kind:       store.DeliveryReport,
		Channel:    "email",
		UserID:     s.identity.UserID,
		EntryID:    res.Entry.ID,
		Recipient:  addr,
		Recipients: 1,
		Message:    shareText(s.env.Categories, res),
	}
	repo := s.env.Deliveries
	return func() tea.Msg {
		return reportRecordedMsg{Recipient: addr, Err: repo.Record(context.Background(), d)}
	}
}
