package history

import "github.com/abhisek/lifewheel/internal/wheel"

// CategoryAverage is the mean score of one category across entries.
type CategoryAverage struct {
	Category wheel.Category `json:"category"`
	Average  float64        `json:"average"`
	Count    int            `json:"count"`
}

// CrossUserCategoryAverages averages each category of set over every
// entry that carries it. Categories with no observations report 0.
func CrossUserCategoryAverages(entries []wheel.Entry, set wheel.CategorySet) []CategoryAverage {
	sums := make(map[string]int, set.Len())
	counts := make(map[string]int, set.Len())
	for _, e := range entries {
		for id, v := range e.Scores {
			if !set.Contains(id) {
				continue
			}
			sums[id] += v
			counts[id]++
		}
	}

	out := make([]CategoryAverage, 0, set.Len())
	for _, c := range set.All() {
		avg := CategoryAverage{Category: c, Count: counts[c.ID]}
		if avg.Count > 0 {
			avg.Average = float64(sums[c.ID]) / float64(avg.Count)
		}
		out = append(out, avg)
	}
	return out
}

// Summary describes a body of entries at a glance.
type Summary struct {
	Entries   int     `json:"entries"`
	Users     int     `json:"users"`
	Average   float64 `json:"average"`
	Weakest   string  `json:"weakest,omitempty"`
	Strongest string  `json:"strongest,omitempty"`
}

// Summarize reports entry and user counts, the overall mean, and the
// weakest and strongest categories by cross-user average.
func Summarize(entries []wheel.Entry, set wheel.CategorySet) Summary {
	s := Summary{Entries: len(entries)}
	if len(entries) == 0 {
		return s
	}

	users := make(map[string]struct{})
	var total float64
	for _, e := range entries {
		users[e.UserID] = struct{}{}
		total += e.Average(set)
	}
	s.Users = len(users)
	s.Average = total / float64(len(entries))

	var lo, hi *CategoryAverage
	avgs := CrossUserCategoryAverages(entries, set)
	for i := range avgs {
		a := &avgs[i]
		if a.Count == 0 {
			continue
		}
		if lo == nil || a.Average < lo.Average {
			lo = a
		}
		if hi == nil || a.Average > hi.Average {
			hi = a
		}
	}
	if lo != nil {
		s.Weakest = lo.Category.ID
		s.Strongest = hi.Category.ID
	}
	return s
}
