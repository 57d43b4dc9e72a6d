// internal/persona/classify_test.go
package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func fullAnswers() AnswerSet {
	return AnswerSet{
		QuestionProfile: "student",
		QuestionProblem: "money_tight",
		QuestionGoal:    "basic",
		QuestionBlocker: "no_capital",
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestClassify_KnownOptions(t *testing.T) {
	tests := []struct {
		name            string
		answers         AnswerSet
		expectedProfile ProfileRecord
		expectedProblem ProblemRecord
		expectedGoal    GoalRecord
		expectedBlocker BlockerRecord
		expectedType    string
	}{
		{
			name:            "student money_tight basic no_capital",
			answers:         fullAnswers(),
			expectedProfile: profileStudent,
			expectedProblem: problemMoneyTight,
			expectedGoal:    goalBasic,
			expectedBlocker: blockerNoCapital,
			expectedType:    "student",
		},
		{
			name: "parent no_time comfort no_knowledge",
			answers: AnswerSet{
				QuestionProfile: "parent",
				QuestionProblem: "no_time",
				QuestionGoal:    "comfort",
				QuestionBlocker: "no_knowledge",
			},
			expectedProfile: profileParent,
			expectedProblem: problemNoTime,
			expectedGoal:    goalComfort,
			expectedBlocker: blockerNoKnowledge,
			expectedType:    "parent",
		},
		{
			name: "employee no_perspective freedom fear_risk",
			answers: AnswerSet{
				QuestionProfile: "employee",
				QuestionProblem: "no_perspective",
				QuestionGoal:    "freedom",
				QuestionBlocker: "fear_risk",
			},
			expectedProfile: profileEmployee,
			expectedProblem: problemNoPerspective,
			expectedGoal:    goalFreedom,
			expectedBlocker: blockerFearRisk,
			expectedType:    "employee",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.answers)

			assert.Equal(t, tt.expectedProfile, c.Profile)
			assert.Equal(t, tt.expectedProblem, c.Problem)
			assert.Equal(t, tt.expectedGoal, c.Goal)
			assert.Equal(t, tt.expectedBlocker, c.Blocker)
			assert.Equal(t, tt.expectedType, c.Type)
		})
	}
}

func TestClassify_EmptyAnswerSet(t *testing.T) {
	c := Classify(AnswerSet{})

	assert.Equal(t, profileStudent, c.Profile)
	assert.Equal(t, problemMoneyTight, c.Problem)
	assert.Equal(t, goalBasic, c.Goal)
	assert.Equal(t, blockerNoCapital, c.Blocker)
	assert.Equal(t, "default", c.Type)
}

func TestClassify_NilAnswerSet(t *testing.T) {
	c := Classify(nil)

	assert.Equal(t, profileStudent, c.Profile)
	assert.Equal(t, "default", c.Type)
}

// Type carries the raw first answer even when it is not a recognized
// option, while the profile lookup falls back to its default.
func TestClassify_RawTypePreservedForUnknownOption(t *testing.T) {
	c := Classify(AnswerSet{QuestionProfile: "unicorn"})

	assert.Equal(t, "unicorn", c.Type)
	assert.Equal(t, profileStudent, c.Profile)
}

func TestClassify_ProfileText(t *testing.T) {
	tests := []struct {
		name     string
		answers  AnswerSet
		expected string
	}{
		{
			name:     "student baseline",
			answers:  fullAnswers(),
			expected: "Struggling Student Sarah • Monatliche Geldknappheit • 500-1.500€ monatlich",
		},
		{
			name: "parent comfort",
			answers: AnswerSet{
				QuestionProfile: "parent",
				QuestionProblem: "no_time",
				QuestionGoal:    "comfort",
			},
			expected: "Overwhelmed Parent Paul • Chronischer Zeitmangel • 1.500-5.000€ monatlich",
		},
		{
			name:     "empty set uses all defaults",
			answers:  AnswerSet{},
			expected: "Struggling Student Sarah • Monatliche Geldknappheit • 500-1.500€ monatlich",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.answers).ProfileText)
		})
	}
}

// Calling Classify twice with the same input yields structurally equal
// output; there is no hidden state.
func TestClassify_Deterministic(t *testing.T) {
	answers := fullAnswers()

	first := Classify(answers)
	second := Classify(answers)

	assert.Equal(t, first, second)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	answers := AnswerSet{QuestionProfile: "parent"}

	_ = Classify(answers)

	assert.Equal(t, AnswerSet{QuestionProfile: "parent"}, answers)
}

// ==========================
// Table Fallback Tests
// ==========================

func TestLookupTables_UnknownValuesFallBack(t *testing.T) {
	assert.Equal(t, profileStudent, profileFor("astronaut"))
	assert.Equal(t, problemMoneyTight, problemFor("bad_hair_day"))
	assert.Equal(t, goalBasic, goalFor("billionaire"))
	assert.Equal(t, blockerNoCapital, blockerFor("gremlins"))
}

func TestLookupTables_EmptyValuesFallBack(t *testing.T) {
	assert.Equal(t, profileStudent, profileFor(""))
	assert.Equal(t, problemMoneyTight, problemFor(""))
	assert.Equal(t, goalBasic, goalFor(""))
	assert.Equal(t, blockerNoCapital, blockerFor(""))
}
