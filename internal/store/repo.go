package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/lifewheel/internal/advice"
	"github.com/abhisek/lifewheel/internal/wheel"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// User is a registered account.
type User struct {
	ID        string    `json:"id"`
	Contact   string    `json:"contact"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRepo stores accounts keyed by contact.
type UserRepo interface {
	// Upsert inserts u, or when u.Contact already exists updates the
	// name, age and email of that account. ID, role and creation time
	// of an existing account are kept. The stored account is returned.
	Upsert(ctx context.Context, u User) (*User, error)

	// Get returns the account with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*User, error)

	// GetByContact returns the account for contact, or ErrNotFound.
	GetByContact(ctx context.Context, contact string) (*User, error)

	// List returns every account, oldest first.
	List(ctx context.Context) ([]User, error)
}

// HistoryRepo is the append-only log of wheel entries.
type HistoryRepo interface {
	// Append stores a new entry.
	Append(ctx context.Context, e wheel.Entry) error

	// AppendNarrative attaches narrative text to an entry. The first
	// narrative for an entry wins.
	AppendNarrative(ctx context.Context, entryID, text string) error

	// ListByUser returns a user's entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]wheel.Entry, error)

	// ListAll returns every entry, newest first.
	ListAll(ctx context.Context) ([]wheel.Entry, error)
}

// SettingsRepo persists the administrator copy.
type SettingsRepo interface {
	// Get returns the stored settings, filling unset slots with defaults.
	Get(ctx context.Context) (advice.Settings, error)

	// Put saves every slot of s.
	Put(ctx context.Context, s advice.Settings) error

	// Reset removes stored settings so defaults apply again.
	Reset(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reports LLM calls.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// Delivery kinds.
const (
	DeliveryReport    = "report"
	DeliveryBroadcast = "broadcast"
)

// Delivery records a report or notification request. Nothing is sent;
// the record is the whole effect.
type Delivery struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Channel    string    `json:"channel"`
	UserID     string    `json:"user_id,omitempty"`
	EntryID    string    `json:"entry_id,omitempty"`
	Recipient  string    `json:"recipient,omitempty"`
	Recipients int       `json:"recipients"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// DeliveryRepo stores delivery requests.
type DeliveryRepo interface {
	Record(ctx context.Context, d Delivery) error
	List(ctx context.Context, kind string, limit int) ([]Delivery, error)
}
