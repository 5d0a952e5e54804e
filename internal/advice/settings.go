package advice

import (
	"fmt"
	"strings"
)

// Settings holds the administrator-editable copy.
type Settings struct {
	IntroText                string `json:"intro_text"`
	AdviceTemplateLow        string `json:"advice_template_low"`
	AdviceTemplateHigh       string `json:"advice_template_high"`
	AdviceTemplateUnbalanced string `json:"advice_template_unbalanced"`
}

// DefaultSettings returns the built-in copy used until an administrator
// saves their own.
func DefaultSettings() Settings {
	return Settings{
		IntroText: "Welcome to the Wheel of Life. This tool helps you gauge the balance " +
			"between the different areas of your life. Please rate each area honestly.",
		AdviceTemplateLow: "Several areas of your life seem to need attention. " +
			"Try focusing on one of them first.",
		AdviceTemplateHigh: "Congratulations! Your life is in good balance. " +
			"Keep doing what works for you.",
		AdviceTemplateUnbalanced: "Your wheel is a little lopsided. For a smoother ride, " +
			"give the weaker areas more of your attention.",
	}
}

// Slot names a single editable field of Settings.
type Slot string

const (
	SlotIntro      Slot = "intro"
	SlotLow        Slot = "low"
	SlotHigh       Slot = "high"
	SlotUnbalanced Slot = "unbalanced"
)

// Slots lists every editable slot in display order.
var Slots = []Slot{SlotIntro, SlotLow, SlotHigh, SlotUnbalanced}

// ParseSlot converts a user-supplied name to a Slot.
func ParseSlot(name string) (Slot, error) {
	s := Slot(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Slots {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown settings slot %q (want one of intro, low, high, unbalanced)", name)
}

// Get returns the text stored in slot.
func (s Settings) Get(slot Slot) string {
	switch slot {
	case SlotIntro:
		return s.IntroText
	case SlotLow:
		return s.AdviceTemplateLow
	case SlotHigh:
		return s.AdviceTemplateHigh
	case SlotUnbalanced:
		return s.AdviceTemplateUnbalanced
	}
	return ""
}

// With returns a copy of s with slot replaced by text.
func (s Settings) With(slot Slot, text string) Settings {
	switch slot {
	case SlotIntro:
		s.IntroText = text
	case SlotLow:
		s.AdviceTemplateLow = text
	case SlotHigh:
		s.AdviceTemplateHigh = text
	case SlotUnbalanced:
		s.AdviceTemplateUnbalanced = text
	}
	return s
}

// Validate rejects settings with blank templates.
func (s Settings) Validate() error {
	for _, slot := range Slots {
		if strings.TrimSpace(s.Get(slot)) == "" {
			return fmt.Errorf("settings slot %q must not be empty", slot)
		}
	}
	return nil
}
