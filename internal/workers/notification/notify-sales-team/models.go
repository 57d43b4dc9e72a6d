// internal/workers/notification/notify-sales-team/models.go
package notifysalesteam

type Input struct {
	LeadID            string            `json:"leadId"`
	Email             string            `json:"email"`
	FirstName         string            `json:"firstName,omitempty"`
	PersonaType       string            `json:"personaType"`
	RecommendedFunnel string            `json:"recommendedFunnel"`
	ProfileText       string            `json:"profileText,omitempty"`
	Answers           map[string]string `json:"answers,omitempty"`
}

type Output struct {
	NotificationsSent []string `json:"notificationsSent"`
	HotLead           bool     `json:"hotLead"`
	NotifiedAt        string   `json:"notifiedAt"` // ISO 8601
}

// Notification channels reported in the output
const (
	ChannelSlack = "slack"
	ChannelSMS   = "sms"
)
