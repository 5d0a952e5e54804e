package wheel

import (
	"errors"
	"fmt"
)

const (
	MinScore     = 1
	MaxScore     = 10
	DefaultScore = 5
)

// ErrBoardFrozen is returned when a frozen board is modified.
var ErrBoardFrozen = errors.New("score board is frozen")

// Scores maps category ID to a score in [MinScore, MaxScore].
type Scores map[string]int

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Ordered returns the scores in the set's display order. Missing
// categories are reported as 0.
func (s Scores) Ordered(set CategorySet) []int {
	out := make([]int, set.Len())
	for i, id := range set.IDs() {
		out[i] = s[id]
	}
	return out
}

// Validate checks that s holds exactly the categories of set, each
// within range.
func (s Scores) Validate(set CategorySet) error {
	for _, id := range set.IDs() {
		v, ok := s[id]
		if !ok {
			return fmt.Errorf("%w: missing %q", ErrIncompleteBoard, id)
		}
		if v < MinScore || v > MaxScore {
			return fmt.Errorf("score for %q out of range: %d", id, v)
		}
	}
	for id := range s {
		if !set.Contains(id) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, id)
		}
	}
	return nil
}

// Clamp forces v into [MinScore, MaxScore].
func Clamp(v int) int {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	}
	return v
}

// ScoreBoard holds the in-progress scores of a rating session.
// Every category of the set is always present.
type ScoreBoard struct {
	set    CategorySet
	values Scores
	frozen bool
}

// NewScoreBoard creates a board with every category at DefaultScore.
func NewScoreBoard(set CategorySet) *ScoreBoard {
	b := &ScoreBoard{set: set}
	b.Reset()
	return b
}

// Reset restores every category to DefaultScore and unfreezes the board.
func (b *ScoreBoard) Reset() {
	b.values = make(Scores, b.set.Len())
	for _, id := range b.set.IDs() {
		b.values[id] = DefaultScore
	}
	b.frozen = false
}

// Set stores a clamped score for id and returns the stored value.
func (b *ScoreBoard) Set(id string, v int) (int, error) {
	if b.frozen {
		return 0, ErrBoardFrozen
	}
	if !b.set.Contains(id) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}
	v = Clamp(v)
	b.values[id] = v
	return v, nil
}

// Get returns the current score for id, or 0 for unknown IDs.
func (b *ScoreBoard) Get(id string) int {
	return b.values[id]
}

// Categories returns the set this board rates.
func (b *ScoreBoard) Categories() CategorySet {
	return b.set
}

// Snapshot returns a copy of the current scores.
func (b *ScoreBoard) Snapshot() Scores {
	return b.values.Clone()
}

// Freeze stops further edits and returns the final scores.
func (b *ScoreBoard) Freeze() Scores {
	b.frozen = true
	return b.values.Clone()
}

// Frozen reports whether the board has been frozen.
func (b *ScoreBoard) Frozen() bool {
	return b.frozen
}
