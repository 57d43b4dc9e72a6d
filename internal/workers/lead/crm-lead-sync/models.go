// internal/workers/lead/crm-lead-sync/models.go
package crmleadsync

type Input struct {
	LeadID      string `json:"leadId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Source      string `json:"source,omitempty"`
	PersonaType string `json:"personaType"`
	FunnelID    string `json:"recommendedFunnel"`
}

type Output struct {
	CRMRecordID string `json:"crmRecordId"`
	SyncStatus  string `json:"syncStatus"` // "created" or "updated"
	SyncedAt    string `json:"syncedAt"`   // ISO 8601
}

// Sync statuses
const (
	SyncCreated = "created"
	SyncUpdated = "updated"
)
