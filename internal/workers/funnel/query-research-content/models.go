// internal/workers/funnel/query-research-content/models.go
package queryresearchcontent

type Input struct {
	PersonaType string     `json:"personaType"`
	Topic       string     `json:"topic,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Pagination  Pagination `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Data      []map[string]interface{} `json:"data"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
