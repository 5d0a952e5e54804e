// Package llm is the provider-neutral client used to ask a language
// model for the personalized wheel narrative.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider generates model output for a Request.
type Provider interface {
	// Generate sends the request and returns the model's output. When
	// req.Schema is set the output is JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider targets.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Narrative requests are single-turn.
	Messages []Message

	// Schema, when set, asks the provider for structured JSON output.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness in [0, 1]. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "wheel-narrative".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON when a schema was requested,
	// otherwise the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns Content as plain text, unquoting it when it is a JSON
// string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	raw := strings.TrimSpace(string(r.Content))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(r.Content, &s); err == nil {
			return s
		}
	}
	return raw
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
