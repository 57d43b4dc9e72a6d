// internal/workers/quiz/validate-quiz-answers/models.go
package validatequizanswers

type Input struct {
	Email     string            `json:"email"`
	FirstName string            `json:"firstName,omitempty"`
	Answers   map[string]string `json:"answers"`
	Source    string            `json:"source,omitempty"`
}

type Output struct {
	Valid            bool              `json:"valid"`
	NormalizedEmail  string            `json:"normalizedEmail"`
	Answers          map[string]string `json:"answers"`
	ValidationErrors []string          `json:"validationErrors,omitempty"`
}
