package wheel

import (
	"errors"
	"math"
)

// Classification thresholds.
const (
	UnbalancedStdDev = 2.0
	LowMean          = 5.0
)

// ErrIncompleteBoard is returned when scores are missing categories.
var ErrIncompleteBoard = errors.New("incomplete score board")

// Classification is the qualitative label of a completed board.
type Classification string

const (
	Low            Classification = "LOW"
	Unbalanced     Classification = "UNBALANCED"
	BalancedOrHigh Classification = "BALANCED_OR_HIGH"
)

// Result is the outcome of classifying a board.
type Result struct {
	Mean   float64        `json:"mean"`
	StdDev float64        `json:"std_dev"`
	Label  Classification `json:"label"`
}

// Classify computes the mean and population standard deviation of
// scores and labels them. Dispersion is checked before the mean, so
// a board with a low mean and a wide spread is UNBALANCED.
func Classify(set CategorySet, scores Scores) (Result, error) {
	if len(scores) == 0 {
		return Result{}, ErrIncompleteBoard
	}
	if err := scores.Validate(set); err != nil {
		return Result{}, err
	}

	values := scores.Ordered(set)
	mean, std := meanStdDev(values)

	res := Result{Mean: mean, StdDev: std}
	switch {
	case std > UnbalancedStdDev:
		res.Label = Unbalanced
	case mean < LowMean:
		res.Label = Low
	default:
		res.Label = BalancedOrHigh
	}
	return res, nil
}

// ClassifyBoard classifies the current state of b.
func ClassifyBoard(b *ScoreBoard) (Result, error) {
	return Classify(b.Categories(), b.Snapshot())
}

// MustClassify is like Classify but panics on error.
func MustClassify(set CategorySet, scores Scores) Result {
	res, err := Classify(set, scores)
	if err != nil {
		panic(err)
	}
	return res
}

func meanStdDev(values []int) (float64, float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}
