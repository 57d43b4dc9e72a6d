// internal/common/payment/client.go
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the payment provider API used for funnel checkouts.
type Client struct {
	apiKey     string
	vendorID   string
	baseURL    string
	httpClient *http.Client
}

// CheckoutRequest describes the session to create for a lead.
type CheckoutRequest struct {
	ProductID string `json:"product_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	FunnelID  string `json:"custom_funnel_id,omitempty"`
	ReturnURL string `json:"return_url,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// CheckoutSession is the provider's answer: the URL the lead is sent to.
type CheckoutSession struct {
	SessionID   string    `json:"session_id"`
	CheckoutURL string    `json:"checkout_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewClient(baseURL, apiKey, vendorID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:   apiKey,
		vendorID: vendorID,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateCheckoutSession creates a hosted checkout session for a product.
func (c *Client) CreateCheckoutSession(ctx context.Context, request *CheckoutRequest) (*CheckoutSession, error) {
	endpoint := fmt.Sprintf("%s/vendors/%s/checkout-sessions", c.baseURL, c.vendorID)

	jsonData, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-DS-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to create checkout session (status %d): %s", resp.StatusCode, string(body))
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if session.CheckoutURL == "" {
		return nil, fmt.Errorf("provider returned empty checkout url")
	}

	return &session, nil
}
