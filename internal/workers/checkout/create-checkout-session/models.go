// internal/workers/checkout/create-checkout-session/models.go
package createcheckoutsession

type Input struct {
	Email             string `json:"email"`
	FirstName         string `json:"firstName,omitempty"`
	FunnelID          string `json:"funnelId"`
	CheckoutProductID string `json:"checkoutProductId"`
	Currency          string `json:"currency,omitempty"`
}

type Output struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
	ExpiresAt   string `json:"expiresAt,omitempty"` // ISO 8601
}
