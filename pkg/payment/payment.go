package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external checkout provider. Subscription payment is
// entirely delegated: we request a checkout session and redirect the driver
// to the returned URL; activation happens on the provider callback.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type CheckoutRequest struct {
	DriverID string  `json:"driver_id"`
	Plan     string  `json:"plan"`
	Amount   float64 `json:"amount"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	Reference   string `json:"reference"`
}

func (c *Client) CreateCheckout(ctx context.Context, in CheckoutRequest) (*CheckoutResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("payment provider not configured")
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("checkout request failed: %s", resp.Status)
	}

	var out CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.CheckoutURL == "" {
		return nil, fmt.Errorf("provider returned empty checkout url")
	}
	return &out, nil
}
