// internal/persona/answers.go
package persona

// Question keys in presentation order. The keys are the string question
// ids the quiz UI has always used.
const (
	QuestionProfile = "1"
	QuestionProblem = "2"
	QuestionGoal    = "3"
	QuestionBlocker = "4"
)

// QuestionKeys lists the quiz questions in their fixed order.
var QuestionKeys = []string{QuestionProfile, QuestionProblem, QuestionGoal, QuestionBlocker}

// AnswerSet maps a question key to the selected option value. A missing
// key means the question is unanswered. Each key holds at most one value.
type AnswerSet map[string]string

// With returns a copy of the set with one answer recorded. The receiver
// is never mutated, so sets can be threaded through the quiz state
// machine as plain values.
func (a AnswerSet) With(key, value string) AnswerSet {
	out := make(AnswerSet, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[key] = value
	return out
}

// Value returns the recorded answer for key and whether one exists.
func (a AnswerSet) Value(key string) (string, bool) {
	v, ok := a[key]
	return v, ok
}

// Complete reports whether every question has an answer.
func (a AnswerSet) Complete() bool {
	for _, key := range QuestionKeys {
		if _, ok := a[key]; !ok {
			return false
		}
	}
	return true
}

// Clone returns an independent copy for retention on the Result.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return AnswerSet{}
	}
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
