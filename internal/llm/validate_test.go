package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func narrativeTestSchema() *Schema {
	return &Schema{
		Name:        "test-narrative",
		Description: "Wheel analysis",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"strengths":  map[string]any{"type": "string"},
				"focus_area": map[string]any{"type": "string"},
				"suggestion": map[string]any{"type": "string"},
				"balance":    map[string]any{"type": "string"},
			},
			"required":             []any{"strengths", "focus_area", "suggestion", "balance"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"strengths":"a","focus_area":"b","suggestion":"c","balance":"d"}`, false},
		{"missing required", `{"strengths":"a","focus_area":"b"}`, true},
		{"wrong type", `{"strengths":1,"focus_area":"b","suggestion":"c","balance":"d"}`, true},
		{"extra property", `{"strengths":"a","focus_area":"b","suggestion":"c","balance":"d","x":"y"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(narrativeTestSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
