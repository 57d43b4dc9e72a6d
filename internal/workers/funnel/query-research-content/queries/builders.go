// internal/workers/funnel/query-research-content/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

// ResearchQuery describes a lookup against the research content index.
type ResearchQuery struct {
	Index       string
	PersonaType string
	Topic       string
	Tags        []string
	Pagination  struct {
		From int
		Size int
	}
}

// BuildQuery assembles the search request for research content. Persona
// type and tags are exact filters, the topic is scored full-text.
func BuildQuery(rq ResearchQuery) (*esapi.SearchRequest, error) {
	if rq.Index == "" {
		return nil, ErrMissingIndex
	}

	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if rq.Topic != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  rq.Topic,
				"fields": []string{"title^3", "summary^2", "content"},
				"type":   "best_fields",
			},
		})
	}

	if rq.PersonaType != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"persona_type": rq.PersonaType},
		})
	}

	if len(rq.Tags) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"tags": rq.Tags},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
	}

	// Without a topic there is nothing to score, fall back to recency
	if rq.Topic == "" {
		query["sort"] = []map[string]interface{}{{"published_at": "desc"}}
	}

	body, _ := json.Marshal(query)

	req := esapi.SearchRequest{
		Index: []string{rq.Index},
		Body:  strings.NewReader(string(body)),
		From:  &rq.Pagination.From,
		Size:  &rq.Pagination.Size,
	}

	return &req, nil
}
