// internal/workers/lead/create-lead-record/models.go
package createleadrecord

type Input struct {
	SubmissionID      string            `json:"submissionId"`
	Email             string            `json:"email"`
	FirstName         string            `json:"firstName,omitempty"`
	Source            string            `json:"source,omitempty"`
	PersonaType       string            `json:"personaType"`
	ProfileText       string            `json:"profileText"`
	RecommendedFunnel string            `json:"recommendedFunnel"`
	Answers           map[string]string `json:"answers"`
}

type Output struct {
	LeadID     string `json:"leadId"`
	LeadStatus string `json:"leadStatus"`
	CreatedAt  string `json:"createdAt"`
}
