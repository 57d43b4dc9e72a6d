// internal/workers/quiz/submit-quiz/models.go
package submitquiz

import "funnel-workers/internal/persona"

type Input struct {
	Email     string            `json:"email"`
	FirstName string            `json:"firstName,omitempty"`
	Answers   map[string]string `json:"answers"`
	Source    string            `json:"source,omitempty"`
}

type Output struct {
	SubmissionID string         `json:"submissionId"`
	Email        string         `json:"email"`
	FirstName    string         `json:"firstName,omitempty"`
	Source       string         `json:"source"`
	SubmittedAt  string         `json:"submittedAt"`
	Result       persona.Result `json:"result"`

	// Flattened copies of the fields downstream workers key off, so
	// BPMN gateways can route without digging into the result object.
	PersonaType       string `json:"personaType"`
	RecommendedFunnel string `json:"recommendedFunnel"`
	ProfileText       string `json:"profileText"`
}
