// internal/persona/types.go
package persona

// ProfileRecord describes the audience profile matched from the first
// quiz question.
type ProfileRecord struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Characteristics []string `json:"characteristics"`
}

// ProblemRecord describes the dominant pain point matched from the
// second quiz question.
type ProblemRecord struct {
	Name     string `json:"name"`
	Impact   string `json:"impact"`
	Solution string `json:"solution"`
}

// GoalRecord describes the income goal matched from the third quiz
// question.
type GoalRecord struct {
	Range    string `json:"range"`
	Timeline string `json:"timeline"`
	Strategy string `json:"strategy"`
}

// BlockerRecord describes the main obstacle matched from the fourth
// quiz question.
type BlockerRecord struct {
	Name     string `json:"name"`
	Solution string `json:"solution"`
	Mindset  string `json:"mindset"`
}

// Persona bundles the four matched records.
type Persona struct {
	Profile ProfileRecord `json:"profile"`
	Problem ProblemRecord `json:"problem"`
	Goal    GoalRecord    `json:"goal"`
	Blocker BlockerRecord `json:"blocker"`
}

// ActionPlan is the concrete plan attached to a strategy bundle.
type ActionPlan struct {
	NextSteps       []string `json:"nextSteps"`
	Timeline        string   `json:"timeline"`
	ExpectedResults string   `json:"expectedResults"`
}

// Result is the complete, immutable outcome of a quiz submission. It is
// computed once and handed whole to the lead pipeline and the renderer.
type Result struct {
	Type              string     `json:"type"`
	ProfileText       string     `json:"profileText"`
	StrategyText      string     `json:"strategyText"`
	RecommendedFunnel string     `json:"recommendedFunnel"`
	Preferences       AnswerSet  `json:"preferences"`
	Persona           Persona    `json:"persona"`
	ActionPlan        ActionPlan `json:"actionPlan"`
}
