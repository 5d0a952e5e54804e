// Package assessment implements the step sequence of a single wheel
// assessment: intro, rating, processing and result.
package assessment

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/lifewheel/internal/account"
	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/history"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// ErrWrongStep is returned when an operation is invoked outside the
// step that permits it.
var ErrWrongStep = errors.New("operation not allowed in current step")

// Ticket identifies one pass through processing. Results delivered
// with a ticket from an earlier pass are discarded.
type Ticket struct {
	Generation uint64
}

// Result is what the result step displays.
type Result struct {
	Entry          wheel.Entry
	Previous       *wheel.Entry
	Classification wheel.Result
	Advice         advice.Advice

	NarrativePending bool
	Persisted        bool
	PersistErr       error
}

// save is the store bookkeeping of one pass. entry.Narrative only ever
// holds text worth storing.
type save struct {
	entry    wheel.Entry
	inFlight bool
	err      error
	saved    bool
	sent     string // narrative included in the in-flight write

	narrativeKnown    bool
	narrativeInFlight bool
	narrativeStored   bool
}

// Session drives one user's assessment. It is owned by a single
// goroutine (the UI update loop) and is not safe for concurrent use.
type Session struct {
	identity account.Identity
	set      wheel.CategorySet
	settings advice.Settings
	board    *wheel.ScoreBoard
	now      func() time.Time

	step       Step
	selected   string
	generation uint64
	result     *Result

	// saves tracks the store writes of every pass that still has work
	// outstanding, current or not.
	saves map[uint64]*save

	// history is newest first and only holds acknowledged entries.
	history []wheel.Entry
}

// New starts a session in the intro step. past is the user's stored
// history in any order.
func New(id account.Identity, set wheel.CategorySet, settings advice.Settings, past []wheel.Entry) *Session {
	return &Session{
		identity: id,
		set:      set,
		settings: settings,
		board:    wheel.NewScoreBoard(set),
		now:      time.Now,
		step:     StepIntro,
		history:  history.Newest(past),
		saves:    make(map[uint64]*save),
	}
}

// SetClock overrides the time source used to stamp entries.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// Step returns the current step.
func (s *Session) Step() Step { return s.step }

// Identity returns the user this session belongs to.
func (s *Session) Identity() account.Identity { return s.identity }

// Categories returns the rated categories.
func (s *Session) Categories() wheel.CategorySet { return s.set }

// Settings returns the copy the session resolves advice with.
func (s *Session) Settings() advice.Settings { return s.settings }

// Selected returns the selected category ID, or "".
func (s *Session) Selected() string { return s.selected }

// Generation returns the current pass counter.
func (s *Session) Generation() uint64 { return s.generation }

// Score returns the current score of a category.
func (s *Session) Score(categoryID string) int { return s.board.Get(categoryID) }

// Scores returns a copy of the board.
func (s *Session) Scores() wheel.Scores { return s.board.Snapshot() }

// Current reports whether t belongs to the running pass.
func (s *Session) Current(t Ticket) bool { return t.Generation == s.generation }

// BeginRating leaves the intro step.
func (s *Session) BeginRating() error {
	if s.step != StepIntro {
		return fmt.Errorf("begin rating in %s: %w", s.step, ErrWrongStep)
	}
	s.step = StepRating
	return nil
}

// Select makes categoryID the target of SetScore. Unknown IDs are
// ignored and false is returned.
func (s *Session) Select(categoryID string) bool {
	if s.step != StepRating || !s.set.Contains(categoryID) {
		return false
	}
	s.selected = categoryID
	return true
}

// SelectOffset moves the selection by delta positions, wrapping around.
// With nothing selected it starts from the first category.
func (s *Session) SelectOffset(delta int) string {
	if s.step != StepRating {
		return s.selected
	}
	n := s.set.Len()
	i := s.set.IndexOf(s.selected)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	s.selected = s.set.At(i).ID
	return s.selected
}

// SetScore sets the selected category's score, clamped to [1,10]. It
// is a no-op when nothing is selected.
func (s *Session) SetScore(v int) (int, bool) {
	if s.step != StepRating || s.selected == "" {
		return 0, false
	}
	stored, err := s.board.Set(s.selected, v)
	if err != nil {
		return 0, false
	}
	return stored, true
}

// Adjust changes the selected category's score by delta.
func (s *Session) Adjust(delta int) (int, bool) {
	if s.selected == "" {
		return 0, false
	}
	return s.SetScore(s.board.Get(s.selected) + delta)
}

// SetCategoryScore sets a category's score directly.
func (s *Session) SetCategoryScore(categoryID string, v int) (int, error) {
	if s.step != StepRating {
		return 0, fmt.Errorf("set score in %s: %w", s.step, ErrWrongStep)
	}
	return s.board.Set(categoryID, v)
}

// BeginProcessing freezes the board and returns the ticket for this
// pass. Calling it again while processing returns false and leaves the
// running pass untouched.
func (s *Session) BeginProcessing() (Ticket, bool) {
	if s.step != StepRating {
		return Ticket{}, false
	}
	s.board.Freeze()
	s.generation++
	s.step = StepProcessing
	return Ticket{Generation: s.generation}, true
}

// Complete creates the entry for the pass identified by t and moves to
// the result step. A stale ticket yields false.
func (s *Session) Complete(t Ticket) (*Result, bool) {
	if s.step != StepProcessing || !s.Current(t) {
		return nil, false
	}

	scores := s.board.Snapshot()
	cls, err := wheel.Classify(s.set, scores)
	if err != nil {
		// The board always carries every category.
		panic(err)
	}

	entry := wheel.NewEntry(s.identity.UserID, scores, s.identity.Email, s.now())
	s.result = &Result{
		Entry:            entry,
		Previous:         history.Previous(s.history),
		Classification:   cls,
		Advice:           advice.Resolve(cls.Label, s.settings, ""),
		NarrativePending: true,
	}
	s.saves[t.Generation] = &save{entry: entry}
	s.step = StepResult
	return s.Result(), true
}

// ApplyNarrative attaches the personalized text for pass t to the
// displayed result. It applies at most once, and only for the current
// pass. Storing the text is KeepNarrative's job.
func (s *Session) ApplyNarrative(t Ticket, text string) bool {
	if s.step != StepResult || !s.Current(t) || s.result == nil || !s.result.NarrativePending {
		return false
	}
	s.result.Advice = advice.Resolve(s.result.Classification.Label, s.settings, text)
	s.result.Entry.Narrative = s.result.Advice.Narrative
	s.result.NarrativePending = false
	return true
}

// KeepNarrative records the text to store with pass t's entry, for any
// pass including stale ones. An empty text means there is nothing to
// store. Only the first call per pass counts.
func (s *Session) KeepNarrative(t Ticket, text string) {
	sv, ok := s.saves[t.Generation]
	if !ok || sv.narrativeKnown {
		return
	}
	sv.narrativeKnown = true
	sv.entry.Narrative = text
	if sv.saved {
		s.setHistoryNarrative(sv.entry.ID, text)
	}
	s.prune(t.Generation)
}

// StartSave hands out pass t's entry for a store write and marks the
// write in flight. It returns false while a write is already in flight
// or once the entry is saved, so an entry is never written twice at
// the same time.
func (s *Session) StartSave(t Ticket) (wheel.Entry, bool) {
	sv, ok := s.saves[t.Generation]
	if !ok || sv.saved || sv.inFlight {
		return wheel.Entry{}, false
	}
	sv.inFlight = true
	sv.sent = sv.entry.Narrative
	return sv.entry, true
}

// MarkPersisted records the store's answer for the entry of pass t.
// Failed entries stay retryable even after a redo; a saved entry joins
// the in-memory history either way. The return value reports whether
// the displayed result changed.
func (s *Session) MarkPersisted(t Ticket, err error) bool {
	sv, ok := s.saves[t.Generation]
	if !ok || sv.saved {
		return false
	}
	sv.inFlight = false
	current := s.Current(t) && s.step == StepResult && s.result != nil

	if err != nil {
		sv.err = err
		if current {
			s.result.PersistErr = err
		}
		return current
	}

	sv.saved = true
	sv.err = nil
	if sv.sent != "" && sv.sent == sv.entry.Narrative {
		sv.narrativeStored = true
	}
	s.history = history.Newest(append(s.history, sv.entry))
	s.prune(t.Generation)
	if !current {
		return false
	}
	s.result.PersistErr = nil
	s.result.Persisted = true
	return true
}

// Retryable returns the passes whose last save failed and that are not
// being written right now, oldest first.
func (s *Session) Retryable() []Ticket {
	var out []Ticket
	for gen, sv := range s.saves {
		if sv.err != nil && !sv.inFlight && !sv.saved {
			out = append(out, Ticket{Generation: gen})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Generation < out[j].Generation })
	return out
}

// FailedSaves counts entries whose last save failed, current pass
// included.
func (s *Session) FailedSaves() int {
	n := 0
	for _, sv := range s.saves {
		if sv.err != nil && !sv.saved {
			n++
		}
	}
	return n
}

// NarrativeWrite is a kept narrative ready to be attached to a saved
// entry.
type NarrativeWrite struct {
	Ticket  Ticket
	EntryID string
	Text    string
}

// NarrativeWrites returns the narratives of saved entries that still
// need storing and marks them in flight.
func (s *Session) NarrativeWrites() []NarrativeWrite {
	var out []NarrativeWrite
	for gen, sv := range s.saves {
		if !sv.saved || sv.entry.Narrative == "" || sv.narrativeStored || sv.narrativeInFlight {
			continue
		}
		sv.narrativeInFlight = true
		out = append(out, NarrativeWrite{Ticket: Ticket{Generation: gen}, EntryID: sv.entry.ID, Text: sv.entry.Narrative})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticket.Generation < out[j].Ticket.Generation })
	return out
}

// MarkNarrativeStored records the store's answer for a NarrativeWrite.
// A failed write is handed out again by the next NarrativeWrites.
func (s *Session) MarkNarrativeStored(t Ticket, err error) {
	sv, ok := s.saves[t.Generation]
	if !ok {
		return
	}
	sv.narrativeInFlight = false
	if err == nil {
		sv.narrativeStored = true
		s.prune(t.Generation)
	}
}

// prune forgets a pass once nothing about it is outstanding.
func (s *Session) prune(gen uint64) {
	sv, ok := s.saves[gen]
	if !ok || !sv.saved || !sv.narrativeKnown {
		return
	}
	if sv.entry.Narrative == "" || sv.narrativeStored {
		delete(s.saves, gen)
	}
}

func (s *Session) setHistoryNarrative(entryID, text string) {
	for i := range s.history {
		if s.history[i].ID == entryID {
			s.history[i].Narrative = text
		}
	}
}

// Redo returns from the result step to rating with a fresh board.
// The previous pass no longer updates the display, but its save and
// narrative still finish and a failed save stays in Retryable.
func (s *Session) Redo() bool {
	if s.step != StepResult {
		return false
	}
	s.generation++
	s.board.Reset()
	s.selected = ""
	s.result = nil
	s.step = StepRating
	return true
}

// Result returns a copy of the current result, or nil before the
// result step.
func (s *Session) Result() *Result {
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// History returns the acknowledged entries, newest first.
func (s *Session) History() []wheel.Entry {
	out := make([]wheel.Entry, len(s.history))
	copy(out, s.history)
	return out
}

// Trend returns the chart series for the result step.
func (s *Session) Trend(window int) []history.TrendPoint {
	return history.Trend(s.history, s.set, window)
}
