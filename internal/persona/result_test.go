// internal/persona/result_test.go
package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// End-to-End Scenarios
// ==========================

func TestBuildResult_StudentScenario(t *testing.T) {
	answers := AnswerSet{
		"1": "student",
		"2": "money_tight",
		"3": "basic",
		"4": "no_capital",
	}

	result := BuildResult(answers)

	assert.Equal(t, "student", result.Type)
	assert.Equal(t, "Struggling Student Sarah • Monatliche Geldknappheit • 500-1.500€ monatlich", result.ProfileText)
	assert.Equal(t, "magic_tool_student", result.RecommendedFunnel)
	assert.Equal(t, answers, result.Preferences)
	assert.Equal(t, profileStudent, result.Persona.Profile)
	assert.Equal(t, problemMoneyTight, result.Persona.Problem)
	assert.Equal(t, goalBasic, result.Persona.Goal)
	assert.Equal(t, blockerNoCapital, result.Persona.Blocker)
}

func TestBuildResult_ParentScenario(t *testing.T) {
	answers := AnswerSet{
		"1": "parent",
		"2": "no_time",
		"3": "basic",
		"4": "no_capital",
	}

	result := BuildResult(answers)

	// The parent+no_time combination outranks the basic-goal-only rule.
	assert.Equal(t, "magic_tool_parent", result.RecommendedFunnel)
	assert.Equal(t, "parent", result.Type)
	assert.Equal(t, profileParent, result.Persona.Profile)
}

func TestBuildResult_EmptyScenario(t *testing.T) {
	result := BuildResult(AnswerSet{})

	assert.Equal(t, "default", result.Type)
	assert.Equal(t, FunnelGeneric, result.RecommendedFunnel)
	assert.Len(t, result.ActionPlan.NextSteps, 3)
	assert.Empty(t, result.Preferences)
}

// ==========================
// Invariants
// ==========================

func TestBuildResult_Deterministic(t *testing.T) {
	answers := AnswerSet{"1": "employee", "3": "freedom"}

	first := BuildResult(answers)
	second := BuildResult(answers)

	assert.Equal(t, first, second)
}

func TestBuildResult_PreferencesAreACopy(t *testing.T) {
	answers := AnswerSet{"1": "student"}

	result := BuildResult(answers)
	answers["1"] = "parent"

	assert.Equal(t, "student", result.Preferences["1"])
}

func TestBuildResult_NilAnswers(t *testing.T) {
	result := BuildResult(nil)

	assert.Equal(t, "default", result.Type)
	assert.NotNil(t, result.Preferences)
	assert.Equal(t, FunnelGeneric, result.RecommendedFunnel)
}
