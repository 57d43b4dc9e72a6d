// internal/persona/quiz.go
package persona

// QuizState names the phases of a quiz session.
type QuizState int

const (
	// StateCollecting means at least one question is still open.
	StateCollecting QuizState = iota
	// StateReadyToSubmit means all questions are answered.
	StateReadyToSubmit
	// StateSubmitted is terminal; the Result has been computed.
	StateSubmitted
)

// Quiz is an immutable quiz-session value. Transitions return a new
// Quiz instead of mutating the receiver, which keeps the flow testable
// without any rendering environment.
type Quiz struct {
	state   QuizState
	index   int
	answers AnswerSet
	result  *Result
}

// NewQuiz starts a session at the first question with no answers.
func NewQuiz() Quiz {
	return Quiz{state: StateCollecting, index: 0, answers: AnswerSet{}}
}

// State returns the current phase.
func (q Quiz) State() QuizState { return q.state }

// QuestionIndex returns the zero-based index of the current question.
// Meaningful only while collecting.
func (q Quiz) QuestionIndex() int { return q.index }

// Answers returns the answers recorded so far.
func (q Quiz) Answers() AnswerSet { return q.answers.Clone() }

// Result returns the computed result after submission, nil before.
func (q Quiz) Result() *Result { return q.result }

// Answer records the option for the current question and advances.
// Re-answering after Back overwrites the previous value. Once the last
// question is answered the session becomes ready to submit. Ignored
// after submission.
func (q Quiz) Answer(value string) Quiz {
	if q.state == StateSubmitted {
		return q
	}
	next := q
	next.answers = q.answers.With(QuestionKeys[q.index], value)
	if q.index+1 >= len(QuestionKeys) {
		next.index = len(QuestionKeys)
		next.state = StateReadyToSubmit
	} else {
		next.index = q.index + 1
		next.state = StateCollecting
	}
	return next
}

// Back steps to the previous question without clearing any recorded
// answer. Allowed at any time before submission.
func (q Quiz) Back() Quiz {
	if q.state == StateSubmitted || q.index == 0 {
		return q
	}
	next := q
	next.index = q.index - 1
	next.state = StateCollecting
	return next
}

// Submit computes the Persona Result and moves to the terminal state.
// Submission is permitted from any pre-submit state: the classifier and
// selector are total, so an incomplete answer set still yields a
// defined (defaulted) result.
func (q Quiz) Submit() Quiz {
	if q.state == StateSubmitted {
		return q
	}
	r := BuildResult(q.answers)
	next := q
	next.result = &r
	next.state = StateSubmitted
	return next
}
