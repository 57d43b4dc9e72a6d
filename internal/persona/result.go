// internal/persona/result.go
package persona

// BuildResult computes the complete Persona Result for a submission.
// It composes Classify and SelectStrategy over the same answer set and
// retains a copy of the raw answers for audit. Deterministic, pure and
// safe under concurrent calls: only the fixed read-only tables are
// touched besides the input.
func BuildResult(answers AnswerSet) Result {
	classification := Classify(answers)
	strategy := SelectStrategy(answers)

	return Result{
		Type:              classification.Type,
		ProfileText:       classification.ProfileText,
		StrategyText:      strategy.Text,
		RecommendedFunnel: strategy.RecommendedFunnel,
		Preferences:       answers.Clone(),
		Persona: Persona{
			Profile: classification.Profile,
			Problem: classification.Problem,
			Goal:    classification.Goal,
			Blocker: classification.Blocker,
		},
		ActionPlan: strategy.ActionPlan,
	}
}
