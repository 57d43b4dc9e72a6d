// internal/workers/quiz/validate-quiz-answers/handler_test.go
package validatequizanswers

import (
	"context"
	"strings"
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

func completeAnswers() map[string]string {
	return map[string]string{
		"1": "student",
		"2": "money_tight",
		"3": "basic",
		"4": "no_capital",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name    string
		input   *Input
		wantErr bool
	}{
		{
			name: "complete answers with valid email",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: completeAnswers(),
			},
		},
		{
			name: "partial answers are accepted",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: map[string]string{"1": "parent"},
			},
		},
		{
			name: "empty answers are accepted",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: map[string]string{},
			},
		},
		{
			name: "unknown answer values pass schema",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: map[string]string{"1": "unicorn"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.True(t, output.Valid)
			assert.Empty(t, output.ValidationErrors)
		})
	}
}

func TestHandler_Execute_NilAnswersNormalized(t *testing.T) {
	h := newTestHandler()

	output, err := h.Execute(context.Background(), &Input{Email: "lisa@example.com"})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.NotNil(t, output.Answers)
	assert.Empty(t, output.Answers)
}

func TestHandler_Execute_EmailNormalized(t *testing.T) {
	h := newTestHandler()

	output, err := h.Execute(context.Background(), &Input{
		Email:   "  Lisa@Example.COM ",
		Answers: completeAnswers(),
	})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Equal(t, "lisa@example.com", output.NormalizedEmail)
}

// ==========================
// Validation Failure Tests
// ==========================

func TestHandler_Execute_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantError string
	}{
		{
			name:      "missing email rejected",
			input:     &Input{Answers: completeAnswers()},
			wantError: "email: required field missing",
		},
		{
			name: "malformed email rejected",
			input: &Input{
				Email:   "not-an-email",
				Answers: completeAnswers(),
			},
			wantError: "email: invalid format",
		},
		{
			name: "unknown question key rejected",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: map[string]string{"5": "student"},
			},
			wantError: "Additional property 5 is not allowed",
		},
		{
			name: "empty answer value rejected",
			input: &Input{
				Email:   "lisa@example.com",
				Answers: map[string]string{"1": ""},
			},
			wantError: "String length must be greater than or equal to 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()

			output, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.False(t, output.Valid)
			require.NotEmpty(t, output.ValidationErrors)
			assert.Contains(t, strings.Join(output.ValidationErrors, "; "), tt.wantError)
		})
	}
}

func TestHandler_Execute_EmailOptionalWhenDisabled(t *testing.T) {
	cfg := LoadConfig()
	cfg.RequireEmail = false
	h := NewHandler(cfg, logger.NewNoOpLogger())

	output, err := h.Execute(context.Background(), &Input{Answers: completeAnswers()})
	require.NoError(t, err)
	assert.True(t, output.Valid)
}
