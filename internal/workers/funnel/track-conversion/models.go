// internal/workers/funnel/track-conversion/models.go
package trackconversion

type Input struct {
	FunnelID string `json:"funnelId"`
	Event    string `json:"event"`
	LeadID   string `json:"leadId,omitempty"`
}

type Output struct {
	CounterKey string `json:"counterKey"`
	Count      int64  `json:"count"`
	TrackedAt  string `json:"trackedAt"` // ISO 8601
}

// Conversion events the funnels emit
const (
	EventQuizCompleted   = "quiz_completed"
	EventLeadCreated     = "lead_created"
	EventCheckoutStarted = "checkout_started"
	EventPurchase        = "purchase"
)
