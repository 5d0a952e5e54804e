package wheel

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one completed assessment. Entries are immutable once
// created; a narrative produced later is attached by the store.
type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	Scores       Scores    `json:"scores"`
	Narrative    string    `json:"narrative,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
}

// NewEntry stamps a fresh entry with a random ID.
func NewEntry(userID string, scores Scores, contactEmail string, now time.Time) Entry {
	return Entry{
		ID:           uuid.NewString(),
		UserID:       userID,
		CreatedAt:    now.UTC(),
		Scores:       scores.Clone(),
		ContactEmail: contactEmail,
	}
}

// Average is the sum of the entry's scores divided by the number of
// categories in set.
func (e Entry) Average(set CategorySet) float64 {
	if set.Len() == 0 {
		return 0
	}
	var sum int
	for _, id := range set.IDs() {
		sum += e.Scores[id]
	}
	return float64(sum) / float64(set.Len())
}
