package assessment

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	asmt "github.com/abhisek/lifewheel/internal/assessment"
	"github.com/abhisek/lifewheel/internal/ui/components"
	"github.com/abhisek/lifewheel/internal/ui/layout"
	"github.com/abhisek/lifewheel/internal/ui/theme"
	"github.com/abhisek/lifewheel/internal/wheel"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

func (s *AssessmentScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	switch s.session.Step() {
	case asmt.StepIntro:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case asmt.StepRating:
		return []layout.KeyHint{
			{Key: "←→", Description: "Area"},
			{Key: "↑↓", Description: "Score"},
			{Key: "1-9,0", Description: "Set"},
			{Key: "Enter", Description: "Done"},
		}
	case asmt.StepProcessing:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.emailing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "n", Description: "Redo"},
		{Key: "e", Description: "Email report"},
		{Key: "s", Description: "Share"},
		{Key: "h", Description: "History"},
	}
	if s.session.FailedSaves() > 0 {
		hints = append([]layout.KeyHint{{Key: "r", Description: "Retry save"}}, hints...)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *AssessmentScreen) View(width, height int) string {
	if s.session == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Loading…"))
	}

	cw := min(width-4, 80)
	var content string
	switch s.session.Step() {
	case asmt.StepIntro:
		content = s.viewIntro(cw)
	case asmt.StepRating:
		content = s.viewRating(cw)
	case asmt.StepProcessing:
		content = s.viewProcessing()
	case asmt.StepResult:
		content = s.viewResult(cw)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *AssessmentScreen) viewIntro(width int) string {
	var chips []string
	for _, c := range s.session.Categories().All() {
		chips = append(chips, lipgloss.NewStyle().Foreground(theme.Hex(c.Color)).Render("● "+c.Name))
	}

	lines := []string{
		theme.Title.Width(width).Render(fmt.Sprintf("Hi %s!", s.identity.Name)),
		"",
		theme.Body.Width(width).Render(s.session.Settings().IntroText),
		"",
		lipgloss.NewStyle().Width(width).Render(strings.Join(chips, "   ")),
		"",
		theme.Hint.Render("Rate each area from 1 (poor) to 10 (excellent). Press Enter to begin."),
	}
	if s.loadErr != nil {
		lines = append(lines, "", theme.ErrorText.Render("Your past check-ins could not be loaded; this one will not be compared."))
	}
	return strings.Join(lines, "\n")
}

func (s *AssessmentScreen) viewRating(width int) string {
	set := s.session.Categories()
	scores := s.session.Scores()

	var selected string
	if c, ok := set.Lookup(s.session.Selected()); ok {
		selected = fmt.Sprintf("%s: %d / %d", c.Name, scores[c.ID], wheel.MaxScore)
	}

	var sum int
	for _, v := range scores {
		sum += v
	}
	mean := float64(sum) / float64(set.Len())

	lines := []string{
		theme.Title.Width(width).Render("How satisfied are you with each area?"),
		"",
		components.WheelChart{Set: set, Scores: scores, Selected: s.session.Selected(), Width: width}.View(),
		theme.Selected.Render(selected),
		theme.Hint.Render(fmt.Sprintf("Current average %.1f", mean)),
	}
	if n := s.session.FailedSaves(); n > 0 {
		lines = append(lines, "", theme.ErrorText.Render(unsavedText(n)+" It will be retried when you finish."))
	}
	return strings.Join(lines, "\n")
}

func unsavedText(n int) string {
	if n == 1 {
		return "1 earlier check-in is not saved yet."
	}
	return fmt.Sprintf("%d earlier check-ins are not saved yet.", n)
}

func (s *AssessmentScreen) viewProcessing() string {
	frame := spinnerFrames[s.spinFrame%len(spinnerFrames)]
	return lipgloss.NewStyle().Foreground(theme.Secondary).Render(frame+"  Reading your wheel…") +
		"\n\n" + theme.Hint.Render("Looking at how your areas balance out.")
}

func (s *AssessmentScreen) viewResult(width int) string {
	res := s.session.Result()
	set := s.session.Categories()
	cls := res.Classification

	sections := []string{
		components.WheelChart{Set: set, Scores: res.Entry.Scores, Width: width}.View(),
		fmt.Sprintf("%s   %s",
			components.LabelBadge(cls.Label),
			theme.Hint.Render(fmt.Sprintf("mean %.2f · spread %.2f", cls.Mean, cls.StdDev))),
		"",
		theme.Body.Width(width).Render(res.Advice.Status),
		"",
	}

	if res.NarrativePending {
		frame := spinnerFrames[s.spinFrame%len(spinnerFrames)]
		sections = append(sections, theme.Hint.Render(frame+" Writing your personal analysis…"))
	} else if res.Advice.HasNarrative() {
		sections = append(sections, lipgloss.NewStyle().
			Width(width).
			Foreground(theme.Text).
			BorderLeft(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Primary).
			PaddingLeft(1).
			Render(res.Advice.Narrative))
	}

	sections = append(sections, "", theme.Subtitle.Render("Last check-ins"),
		components.TrendChart{Points: s.session.Trend(s.env.Assessment.TrendWindow), Width: width}.View(), "")

	switch {
	case res.PersistErr != nil:
		sections = append(sections, theme.ErrorText.Render("This check-in was not saved. Press r to retry."))
	case res.Persisted:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Success).Render("✓ Saved"))
	default:
		sections = append(sections, theme.Hint.Render("Saving…"))
	}
	earlier := s.session.FailedSaves()
	if res.PersistErr != nil {
		earlier--
	}
	if earlier > 0 {
		sections = append(sections, theme.ErrorText.Render(unsavedText(earlier)+" Press r to retry."))
	}

	if s.emailing {
		sections = append(sections, "", s.email.View())
	} else if s.notice != "" {
		sections = append(sections, theme.Hint.Render(s.notice))
	}
	if s.showShare {
		sections = append(sections, "", theme.Card.Width(width).Render(shareText(set, res)))
	}
	return strings.Join(sections, "\n")
}

// shareText is the plain-text summary used for sharing and reports.
func shareText(set wheel.CategorySet, res *asmt.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "My Wheel of Life (%s): average %.1f, %s.\n",
		res.Entry.CreatedAt.Local().Format("Jan 02, 2006"), res.Classification.Mean, components.LabelText(res.Classification.Label))

	parts := make([]string, 0, set.Len())
	for _, c := range set.All() {
		parts = append(parts, fmt.Sprintf("%s %d", c.Name, res.Entry.Scores[c.ID]))
	}
	b.WriteString(strings.Join(parts, " · "))
	b.WriteString("\n" + res.Advice.Status)
	return b.String()
}
