// internal/models/quiz.go
package models

import "time"

// QuizSubmission carries one completed quiz through the pipeline.
type QuizSubmission struct {
	SubmissionID string            `json:"submissionId"`
	Email        string            `json:"email"`
	FirstName    string            `json:"firstName,omitempty"`
	Answers      map[string]string `json:"answers"`
	Source       string            `json:"source,omitempty"`
	SubmittedAt  time.Time         `json:"submittedAt"`
}
