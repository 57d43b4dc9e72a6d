// internal/workers/funnel/select-funnel-content/models.go
package selectfunnelcontent

import "funnel-workers/pkg/registry"

type Input struct {
	FunnelID string `json:"recommendedFunnel"`
}

type Output struct {
	FunnelID          string               `json:"funnelId"`
	VSLVariant        string               `json:"vslVariant"`
	LandingPath       string               `json:"landingPath"`
	CheckoutProductID string               `json:"checkoutProductId"`
	Pricing           registry.Pricing     `json:"pricing"`
	EmailSequence     []registry.EmailStep `json:"emailSequence"`
	FallbackUsed      bool                 `json:"fallbackUsed"`
}
