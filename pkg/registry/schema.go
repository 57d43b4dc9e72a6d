// pkg/registry/schema.go
package registry

// FunnelRegistry is the on-disk catalog mapping funnel ids to the
// content bundle each funnel serves.
type FunnelRegistry struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Funnels     []Funnel `json:"funnels"`
}

// Funnel describes one funnel's content bundle.
type Funnel struct {
	ID                string      `json:"id"`
	DisplayName       string      `json:"displayName"`
	Description       string      `json:"description"`
	VSLVariant        string      `json:"vslVariant"`
	LandingPath       string      `json:"landingPath"`
	CheckoutProductID string      `json:"checkoutProductId"`
	Pricing           Pricing     `json:"pricing"`
	EmailSequence     []EmailStep `json:"emailSequence"`
	Tags              []string    `json:"tags,omitempty"`
}

// Pricing holds the funnel's front-end offer price.
type Pricing struct {
	Currency     string  `json:"currency"`
	Amount       float64 `json:"amount"`
	Installments int     `json:"installments,omitempty"`
}

// EmailStep is one entry of the funnel's follow-up sequence.
type EmailStep struct {
	TemplateID string `json:"templateId"`
	Subject    string `json:"subject"`
	DelayHours int    `json:"delayHours"`
}
