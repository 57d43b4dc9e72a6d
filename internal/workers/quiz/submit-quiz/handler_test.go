// internal/workers/quiz/submit-quiz/handler_test.go
package submitquiz

import (
	"context"
	"testing"

	"funnel-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler() *Handler {
	return NewHandler(LoadConfig(), logger.NewNoOpLogger())
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	h := newTestHandler()

	output, err := h.Execute(context.Background(), &Input{
		Email:     "lisa@example.com",
		FirstName: "Lisa",
		Answers: map[string]string{
			"1": "student",
			"2": "money_tight",
			"3": "basic",
			"4": "no_capital",
		},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, output.SubmissionID)
	assert.NotEmpty(t, output.SubmittedAt)
	assert.Equal(t, "lisa@example.com", output.Email)
	assert.Equal(t, "quiz", output.Source)

	assert.Equal(t, "student", output.PersonaType)
	assert.Equal(t, "magic_tool_student", output.RecommendedFunnel)
	assert.Equal(t, "Struggling Student Sarah • Monatliche Geldknappheit • 500-1.500€ monatlich", output.ProfileText)

	// Flattened routing fields mirror the result object
	assert.Equal(t, output.Result.Type, output.PersonaType)
	assert.Equal(t, output.Result.RecommendedFunnel, output.RecommendedFunnel)
	assert.Equal(t, output.Result.ProfileText, output.ProfileText)
}

func TestHandler_Execute_EmptyAnswers(t *testing.T) {
	h := newTestHandler()

	output, err := h.Execute(context.Background(), &Input{
		Email:   "max@example.com",
		Answers: map[string]string{},
	})
	require.NoError(t, err)

	assert.Equal(t, "default", output.PersonaType)
	assert.Equal(t, "magic_tool_generic", output.RecommendedFunnel)
	assert.Len(t, output.Result.ActionPlan.NextSteps, 3)
}

func TestHandler_Execute_SourcePreserved(t *testing.T) {
	h := newTestHandler()

	output, err := h.Execute(context.Background(), &Input{
		Email:   "max@example.com",
		Answers: map[string]string{"1": "employee"},
		Source:  "instagram_bio",
	})
	require.NoError(t, err)
	assert.Equal(t, "instagram_bio", output.Source)
}

func TestHandler_Execute_UniqueSubmissionIDs(t *testing.T) {
	h := newTestHandler()
	input := &Input{Email: "max@example.com", Answers: map[string]string{"1": "parent"}}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.NotEqual(t, first.SubmissionID, second.SubmissionID)
	// The computed result itself stays deterministic
	assert.Equal(t, first.Result, second.Result)
}

func TestHandler_Execute_AnswersRetainedOnResult(t *testing.T) {
	h := newTestHandler()
	answers := map[string]string{"1": "parent", "2": "no_time"}

	output, err := h.Execute(context.Background(), &Input{
		Email:   "paul@example.com",
		Answers: answers,
	})
	require.NoError(t, err)

	assert.Equal(t, "parent", output.Result.Preferences["1"])
	assert.Equal(t, "no_time", output.Result.Preferences["2"])

	// Mutating the caller's map must not leak into the frozen result
	answers["1"] = "employee"
	assert.Equal(t, "parent", output.Result.Preferences["1"])
}
