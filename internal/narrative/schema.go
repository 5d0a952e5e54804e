package narrative

import "github.com/abhisek/lifewheel/internal/llm"

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "wheel-narrative",
	Description: "A short, encouraging analysis of a wheel of life self-assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strengths": map[string]any{
				"type":        "string",
				"description": "The user's strongest life areas and why they matter (1-2 sentences)",
			},
			"focus_area": map[string]any{
				"type":        "string",
				"description": "The lowest-scoring area, named plainly (1 sentence)",
			},
			"suggestion": map[string]any{
				"type":        "string",
				"description": "One small, practical step for the focus area this week (1-2 sentences)",
			},
			"balance": map[string]any{
				"type":        "string",
				"description": "Overall balance of the wheel, compared with last check-in when given (1-2 sentences)",
			},
		},
		"required":             []any{"strengths", "focus_area", "suggestion", "balance"},
		"additionalProperties": false,
	},
}

type output struct {
	Strengths  string `json:"strengths"`
	FocusArea  string `json:"focus_area"`
	Suggestion string `json:"suggestion"`
	Balance    string `json:"balance"`
}
