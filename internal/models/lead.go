// internal/models/lead.go
package models

import "time"

// Lead is the persisted record of a quiz participant.
type Lead struct {
	ID            string            `json:"id"`
	Email         string            `json:"email"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Source        string            `json:"source"`
	PersonaType   string            `json:"personaType"`
	FunnelID      string            `json:"funnelId"`
	ProfileText   string            `json:"profileText"`
	QuizAnswers   map[string]string `json:"quizAnswers"`
	CRMRecordID   string            `json:"crmRecordId,omitempty"`
	EmailVerified bool              `json:"emailVerified"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
