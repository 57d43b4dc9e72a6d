// internal/workers/lead/send-welcome-email/models.go
package sendwelcomeemail

type Input struct {
	LeadID       string   `json:"leadId"`
	Email        string   `json:"email"`
	FirstName    string   `json:"firstName,omitempty"`
	PersonaType  string   `json:"personaType"`
	ProfileText  string   `json:"profileText"`
	StrategyText string   `json:"strategyText"`
	FunnelID     string   `json:"recommendedFunnel"`
	NextSteps    []string `json:"nextSteps,omitempty"`
}

type Output struct {
	EmailID string `json:"emailId"`
	Status  string `json:"status"` // "sent", "failed", "disabled"
	Subject string `json:"subject,omitempty"`
	SentAt  string `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
