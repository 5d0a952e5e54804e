package narrative

import (
	"fmt"
	"strings"

	"github.com/abhisek/lifewheel/internal/wheel"
)

const systemPrompt = `You are a warm, practical life coach. You read a person's "wheel of life" self-assessment, where each life area is scored from 1 to 10.

Rules:
- Speak directly to the person, friendly and encouraging.
- Name their strengths.
- Pick the lowest-scoring area and suggest one small, concrete step they can take this week.
- Comment on the overall balance of the wheel. When last check-in scores are given, mention what changed.
- Keep the whole answer under 200 words.
- Never diagnose or give medical advice.`

const firstEntryMarker = "This is the person's first check-in."

// formatScores renders scores in category order as "Name: score".
func formatScores(set wheel.CategorySet, scores wheel.Scores) string {
	parts := make([]string, 0, set.Len())
	for _, c := range set.All() {
		if v, ok := scores[c.ID]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", c.Name, v))
		}
	}
	return strings.Join(parts, ", ")
}

func buildUserMessage(set wheel.CategorySet, current wheel.Entry, previous *wheel.Entry) string {
	var b strings.Builder
	b.WriteString("Current scores (1 to 10):\n")
	b.WriteString(formatScores(set, current.Scores))
	b.WriteString("\n\nHistory:\n")
	if previous == nil {
		b.WriteString(firstEntryMarker)
	} else {
		fmt.Fprintf(&b, "Last check-in scores: %s.", formatScores(set, previous.Scores))
	}
	b.WriteString("\n\nWrite the analysis.")
	return b.String()
}

// render joins the structured fields into paragraphs, skipping blanks.
func render(out output) string {
	var paras []string
	for _, p := range []string{out.Strengths, strings.TrimSpace(out.FocusArea + " " + out.Suggestion), out.Balance} {
		if p = strings.TrimSpace(p); p != "" {
			paras = append(paras, p)
		}
	}
	return strings.Join(paras, "\n\n")
}

// signature identifies a score set for caching, in category order.
func signature(set wheel.CategorySet, scores wheel.Scores) string {
	var b strings.Builder
	for _, v := range scores.Ordered(set) {
		fmt.Fprintf(&b, "%d,", v)
	}
	return b.String()
}

func cacheKey(set wheel.CategorySet, current wheel.Entry, previous *wheel.Entry) string {
	key := signature(set, current.Scores) + "|"
	if previous != nil {
		key += signature(set, previous.Scores)
	}
	return key
}
