package wheel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(set CategorySet, v int) Scores {
	s := make(Scores, set.Len())
	for _, id := range set.IDs() {
		s[id] = v
	}
	return s
}

func TestClassify_UniformBoards(t *testing.T) {
	set := DefaultCategories()

	for v := MinScore; v <= MaxScore; v++ {
		res, err := Classify(set, uniform(set, v))
		require.NoError(t, err)
		assert.InDelta(t, float64(v), res.Mean, 1e-9)
		assert.Zero(t, res.StdDev)

		want := BalancedOrHigh
		if v < 5 {
			want = Low
		}
		assert.Equal(t, want, res.Label, "uniform %d", v)
	}
}

func TestClassify_Examples(t *testing.T) {
	set := DefaultCategories()

	tests := []struct {
		name   string
		scores Scores
		mean   float64
		stdDev float64
		label  Classification
	}{
		{
			name: "lopsided high mean",
			scores: Scores{
				"spirituality": 10, "family": 10, "personal": 1,
				"social": 1, "health": 10, "work": 10,
			},
			mean:   7.0,
			stdDev: math.Sqrt(18),
			label:  Unbalanced,
		},
		{
			name:   "all three",
			scores: uniform(set, 3),
			mean:   3.0,
			label:  Low,
		},
		{
			name:   "all eight",
			scores: uniform(set, 8),
			mean:   8.0,
			label:  BalancedOrHigh,
		},
		{
			name: "low and spread wide",
			scores: Scores{
				"spirituality": 1, "family": 1, "personal": 1,
				"social": 1, "health": 9, "work": 1,
			},
			mean:   14.0 / 6.0,
			stdDev: math.Sqrt(80.0 / 9.0),
			label:  Unbalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(set, tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.mean, res.Mean, 1e-9)
			assert.InDelta(t, tt.stdDev, res.StdDev, 1e-9)
			assert.Equal(t, tt.label, res.Label)
		})
	}
}

func TestClassify_ThresholdEdges(t *testing.T) {
	set := DefaultCategories()

	// Mean exactly 5.0 is not LOW.
	res, err := Classify(set, uniform(set, 5))
	require.NoError(t, err)
	assert.Equal(t, BalancedOrHigh, res.Label)

	// Std-dev exactly 2.0 is not UNBALANCED: {3,7,3,7,3,7} has mean 5, sd 2.
	res, err = Classify(set, Scores{
		"spirituality": 3, "family": 7, "personal": 3,
		"social": 7, "health": 3, "work": 7,
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.StdDev, 1e-9)
	assert.Equal(t, BalancedOrHigh, res.Label)
}

func TestClassify_PermutationInvariant(t *testing.T) {
	set := DefaultCategories()
	values := []int{2, 9, 4, 7, 5, 10}
	ids := set.IDs()

	base := make(Scores)
	for i, id := range ids {
		base[id] = values[i]
	}
	want, err := Classify(set, base)
	require.NoError(t, err)

	for shift := 1; shift < len(values); shift++ {
		rotated := make(Scores)
		for i, id := range ids {
			rotated[id] = values[(i+shift)%len(values)]
		}
		got, err := Classify(set, rotated)
		require.NoError(t, err)
		assert.InDelta(t, want.Mean, got.Mean, 1e-9)
		assert.InDelta(t, want.StdDev, got.StdDev, 1e-9)
		assert.Equal(t, want.Label, got.Label)
	}
}

func TestClassify_IncompleteBoard(t *testing.T) {
	set := DefaultCategories()

	_, err := Classify(set, nil)
	assert.ErrorIs(t, err, ErrIncompleteBoard)

	partial := uniform(set, 6)
	delete(partial, "work")
	_, err = Classify(set, partial)
	assert.ErrorIs(t, err, ErrIncompleteBoard)

	extra := uniform(set, 6)
	extra["hobbies"] = 4
	_, err = Classify(set, extra)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	assert.Panics(t, func() { MustClassify(set, Scores{}) })
}

func TestClassifyBoard(t *testing.T) {
	b := NewScoreBoard(DefaultCategories())
	res, err := ClassifyBoard(b)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Mean)
	assert.Equal(t, BalancedOrHigh, res.Label)
}
