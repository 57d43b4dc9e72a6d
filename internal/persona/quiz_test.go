// internal/persona/quiz_test.go
package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuiz_HappyPath(t *testing.T) {
	q := NewQuiz()
	assert.Equal(t, StateCollecting, q.State())
	assert.Equal(t, 0, q.QuestionIndex())

	q = q.Answer("student")
	assert.Equal(t, StateCollecting, q.State())
	assert.Equal(t, 1, q.QuestionIndex())

	q = q.Answer("money_tight").Answer("basic")
	assert.Equal(t, StateCollecting, q.State())

	q = q.Answer("no_capital")
	assert.Equal(t, StateReadyToSubmit, q.State())

	q = q.Submit()
	assert.Equal(t, StateSubmitted, q.State())
	assert.NotNil(t, q.Result())
	assert.Equal(t, "magic_tool_student", q.Result().RecommendedFunnel)
}

func TestQuiz_BackKeepsAnswers(t *testing.T) {
	q := NewQuiz().Answer("parent").Answer("no_time")

	q = q.Back()
	assert.Equal(t, 1, q.QuestionIndex())
	assert.Equal(t, StateCollecting, q.State())

	answers := q.Answers()
	assert.Equal(t, "parent", answers[QuestionProfile])
	assert.Equal(t, "no_time", answers[QuestionProblem])
}

func TestQuiz_BackFromReadyToSubmit(t *testing.T) {
	q := NewQuiz().Answer("parent").Answer("no_time").Answer("basic").Answer("no_capital")
	assert.Equal(t, StateReadyToSubmit, q.State())

	q = q.Back()
	assert.Equal(t, StateCollecting, q.State())
	assert.Equal(t, 3, q.QuestionIndex())
	assert.Len(t, q.Answers(), 4)
}

func TestQuiz_ReAnswerOverwrites(t *testing.T) {
	q := NewQuiz().Answer("student").Back().Answer("parent")

	assert.Equal(t, "parent", q.Answers()[QuestionProfile])
	assert.Equal(t, 1, q.QuestionIndex())
}

func TestQuiz_BackAtFirstQuestionIsNoOp(t *testing.T) {
	q := NewQuiz().Back()

	assert.Equal(t, 0, q.QuestionIndex())
	assert.Equal(t, StateCollecting, q.State())
}

func TestQuiz_SubmitIncomplete(t *testing.T) {
	// The core functions are total, so an early submit still produces a
	// defined, defaulted result.
	q := NewQuiz().Answer("student").Submit()

	assert.Equal(t, StateSubmitted, q.State())
	assert.Equal(t, "student", q.Result().Type)
	assert.Equal(t, profileStudent, q.Result().Persona.Profile)
}

func TestQuiz_TerminalStateIsStable(t *testing.T) {
	q := NewQuiz().Submit()
	resultBefore := q.Result()

	q = q.Answer("student").Back().Submit()

	assert.Equal(t, StateSubmitted, q.State())
	assert.Equal(t, resultBefore, q.Result())
	assert.Empty(t, q.Answers())
}

func TestQuiz_TransitionsDoNotAliasState(t *testing.T) {
	base := NewQuiz().Answer("student")
	branchA := base.Answer("money_tight")
	branchB := base.Answer("no_time")

	assert.Equal(t, "money_tight", branchA.Answers()[QuestionProblem])
	assert.Equal(t, "no_time", branchB.Answers()[QuestionProblem])
	assert.NotContains(t, base.Answers(), QuestionProblem)
}
