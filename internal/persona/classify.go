// internal/persona/classify.go
package persona

import "strings"

// TypeDefault is reported when the first question was never answered.
const TypeDefault = "default"

// profileTextSeparator joins the summary line shown on the result page.
const profileTextSeparator = " • "

// Classification is the output of Classify: the four matched records
// plus the composed summary line and the displayed type.
type Classification struct {
	Profile     ProfileRecord `json:"profile"`
	Problem     ProblemRecord `json:"problem"`
	Goal        GoalRecord    `json:"goal"`
	Blocker     BlockerRecord `json:"blocker"`
	ProfileText string        `json:"profileText"`
	Type        string        `json:"type"`
}

// Classify maps a (possibly incomplete) answer set onto the persona
// tables. It is a total function: every lookup independently falls back
// to its default variant, so Classify never fails.
//
// Type carries the raw first-question answer, not the resolved table
// key. An unrecognized answer therefore shows up verbatim in Type while
// the profile silently defaults. The original quiz behaves this way and
// downstream funnels key off the raw value, so it is kept.
func Classify(answers AnswerSet) Classification {
	profile := profileFor(answers[QuestionProfile])
	problem := problemFor(answers[QuestionProblem])
	goal := goalFor(answers[QuestionGoal])
	blocker := blockerFor(answers[QuestionBlocker])

	personaType := TypeDefault
	if raw, ok := answers.Value(QuestionProfile); ok {
		personaType = raw
	}

	profileText := strings.Join(
		[]string{profile.Name, problem.Name, goal.Range},
		profileTextSeparator,
	)

	return Classification{
		Profile:     profile,
		Problem:     problem,
		Goal:        goal,
		Blocker:     blocker,
		ProfileText: profileText,
		Type:        personaType,
	}
}
