package assessment

import (
	"time"

	asmt "github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// pastLoadedMsg delivers the user's stored entries.
type pastLoadedMsg struct {
	Entries []wheel.Entry
	Err     error
}

// settleMsg ends the processing animation of a pass.
type settleMsg struct {
	Ticket asmt.Ticket
}

// spinnerTickMsg advances the processing and narrative spinners.
type spinnerTickMsg time.Time

// persistedMsg acknowledges the store write of a pass's entry.
type persistedMsg struct {
	Ticket asmt.Ticket
	Err    error
}

// narrativeMsg carries the personalized text of a pass.
type narrativeMsg struct {
	Ticket asmt.Ticket
	Text   string
}

// narrativeStoredMsg acknowledges the narrative write.
type narrativeStoredMsg struct {
	Ticket  asmt.Ticket
	EntryID string
	Err     error
}

// reportRecordedMsg acknowledges a "send report" request.
type reportRecordedMsg struct {
	Recipient string
	Err       error
}
