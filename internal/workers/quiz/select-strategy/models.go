// internal/workers/quiz/select-strategy/models.go
package selectstrategy

import "funnel-workers/internal/persona"

type Input struct {
	Answers map[string]string `json:"answers"`
}

type Output struct {
	StrategyText      string             `json:"strategyText"`
	RecommendedFunnel string             `json:"recommendedFunnel"`
	ActionPlan        persona.ActionPlan `json:"actionPlan"`
}
