package wheel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScoreBoard_Defaults(t *testing.T) {
	set := DefaultCategories()
	b := NewScoreBoard(set)

	snap := b.Snapshot()
	assert.Len(t, snap, set.Len())
	for _, id := range set.IDs() {
		assert.Equal(t, DefaultScore, snap[id], id)
	}
	assert.NoError(t, snap.Validate(set))
}

func TestScoreBoard_SetClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{9, 9},
		{10, 10},
		{11, 10},
		{100, 10},
	}

	b := NewScoreBoard(DefaultCategories())
	for _, tt := range tests {
		got, err := b.Set("health", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Set(%d)", tt.in)
		assert.Equal(t, tt.want, b.Get("health"))
	}
}

func TestScoreBoard_UnknownCategory(t *testing.T) {
	b := NewScoreBoard(DefaultCategories())
	_, err := b.Set("hobbies", 4)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.NotContains(t, b.Snapshot(), "hobbies")
}

func TestScoreBoard_FreezeAndReset(t *testing.T) {
	b := NewScoreBoard(DefaultCategories())
	_, err := b.Set("work", 9)
	require.NoError(t, err)

	frozen := b.Freeze()
	assert.True(t, b.Frozen())
	assert.Equal(t, 9, frozen["work"])

	_, err = b.Set("work", 2)
	assert.ErrorIs(t, err, ErrBoardFrozen)

	// The frozen copy is independent of the board.
	frozen["work"] = 1
	assert.Equal(t, 9, b.Get("work"))

	b.Reset()
	assert.False(t, b.Frozen())
	assert.Equal(t, DefaultScore, b.Get("work"))
}

func TestCategorySet(t *testing.T) {
	set := DefaultCategories()
	assert.Equal(t, 6, set.Len())
	assert.Equal(t, []string{"spirituality", "family", "personal", "social", "health", "work"}, set.IDs())

	c, ok := set.Lookup("health")
	require.True(t, ok)
	assert.Equal(t, "#facc15", c.Color)
	assert.Equal(t, 4, set.IndexOf("health"))
	assert.Equal(t, -1, set.IndexOf("nope"))

	_, err := NewCategorySet(Category{ID: "a"}, Category{ID: "a"})
	assert.Error(t, err)
	_, err = NewCategorySet()
	assert.Error(t, err)
}

func TestNewEntry(t *testing.T) {
	set := DefaultCategories()
	scores := uniform(set, 4)
	scores["work"] = 10
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	a := NewEntry("u1", scores, "a@example.com", now)
	b := NewEntry("u1", scores, "", now)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, now, a.CreatedAt)
	assert.InDelta(t, 30.0/6.0, a.Average(set), 1e-9)

	scores["work"] = 1
	assert.Equal(t, 10, a.Scores["work"], "entry must not alias the caller's map")
}
