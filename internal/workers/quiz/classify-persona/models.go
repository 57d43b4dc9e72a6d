// internal/workers/quiz/classify-persona/models.go
package classifypersona

import "funnel-workers/internal/persona"

type Input struct {
	Answers map[string]string `json:"answers"`
}

type Output struct {
	Type        string          `json:"type"`
	ProfileText string          `json:"profileText"`
	Persona     persona.Persona `json:"persona"`
}
