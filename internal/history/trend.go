// Package history derives trends and aggregate statistics from stored
// wheel entries.
package history

import (
	"sort"
	"time"

	"github.com/abhisek/lifewheel/internal/wheel"
)

// DefaultWindow is the number of entries shown in a trend.
const DefaultWindow = 5

// TrendPoint is one entry's overall score in a trend series.
type TrendPoint struct {
	EntryID string    `json:"entry_id"`
	Label   string    `json:"label"`
	At      time.Time `json:"at"`
	Average float64   `json:"average"`
}

// Newest returns a copy of entries sorted by creation time, newest first.
// Input order is never trusted.
func Newest(entries []wheel.Entry) []wheel.Entry {
	out := make([]wheel.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Trend returns the averages of the most recent window entries in
// chronological order, oldest first. A non-positive window yields no
// points.
func Trend(entries []wheel.Entry, set wheel.CategorySet, window int) []TrendPoint {
	if window <= 0 || len(entries) == 0 {
		return nil
	}

	recent := Newest(entries)
	if len(recent) > window {
		recent = recent[:window]
	}

	points := make([]TrendPoint, len(recent))
	for i, e := range recent {
		points[len(recent)-1-i] = TrendPoint{
			EntryID: e.ID,
			Label:   e.CreatedAt.Local().Format("Jan 02"),
			At:      e.CreatedAt,
			Average: e.Average(set),
		}
	}
	return points
}

// Delta is the change from the first to the last point of a trend.
func Delta(points []TrendPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[len(points)-1].Average - points[0].Average
}

// Previous returns the most recent entry, or nil when there is none.
// It is the comparison point for a new assessment.
func Previous(entries []wheel.Entry) *wheel.Entry {
	if len(entries) == 0 {
		return nil
	}
	e := Newest(entries)[0]
	return &e
}
