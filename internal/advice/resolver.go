// Package advice turns a classification into user-facing copy.
package advice

import (
	"strings"

	"github.com/abhisek/lifewheel/internal/wheel"
)

// Advice carries the two independent texts shown on the result screen.
// Status always comes from the configured templates; Narrative is the
// optional personalized text and is never merged into Status.
type Advice struct {
	Status    string `json:"status"`
	Narrative string `json:"narrative,omitempty"`
}

// Primary returns the narrative when present, otherwise the status line.
func (a Advice) Primary() string {
	if a.Narrative != "" {
		return a.Narrative
	}
	return a.Status
}

// HasNarrative reports whether a narrative is attached.
func (a Advice) HasNarrative() bool {
	return a.Narrative != ""
}

// StatusFor returns the template matching label.
func StatusFor(label wheel.Classification, s Settings) string {
	switch label {
	case wheel.Unbalanced:
		return s.AdviceTemplateUnbalanced
	case wheel.Low:
		return s.AdviceTemplateLow
	default:
		return s.AdviceTemplateHigh
	}
}

// Resolve builds the Advice for label. A blank narrative is treated as
// absent.
func Resolve(label wheel.Classification, s Settings, narrative string) Advice {
	a := Advice{Status: StatusFor(label, s)}
	if strings.TrimSpace(narrative) != "" {
		a.Narrative = narrative
	}
	return a
}
