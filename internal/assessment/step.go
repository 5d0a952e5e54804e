package assessment

// Step is a stage of the assessment flow.
type Step int

const (
	StepIntro      Step = iota // Intro text and category overview
	StepRating                 // Scores being edited
	StepProcessing             // Board frozen, settle animation running
	StepResult                 // Entry created, advice shown
)

func (s Step) String() string {
	switch s {
	case StepIntro:
		return "intro"
	case StepRating:
		return "rating"
	case StepProcessing:
		return "processing"
	case StepResult:
		return "result"
	}
	return "unknown"
}
