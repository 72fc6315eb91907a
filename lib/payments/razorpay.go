package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"skgroup/lib/models"
)

const defaultBaseURL = "https://api.razorpay.com"

// OrderRequest is the provider-side order creation payload. Amount is an
// integer count of minor currency units (paise).
type OrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order is the provider's view of a created order.
type Order struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// OrderClient creates provider-side payment orders. The orchestrator owns
// input validation; implementations are thin transport adapters.
type OrderClient interface {
	CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error)
}

// RazorpayClient talks to the Razorpay orders API using key-id/key-secret
// basic auth.
type RazorpayClient struct {
	KeyID      string
	KeySecret  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewRazorpayClient creates a Razorpay orders client.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		KeyID:      keyID,
		KeySecret:  keySecret,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{},
	}
}

// CreateOrder creates an order via POST /v1/orders. Any provider error
// surfaces as a single order-creation failure; no retry is attempted.
func (c *RazorpayClient) CreateOrder(ctx context.Context, request *OrderRequest) (*Order, error) {
	if request.Currency == "" {
		request.Currency = "INR"
	}

	jsonBody, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/orders", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("order creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("order creation failed: %s", resp.Status)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("order creation failed: %w", err)
	}
	return &order, nil
}

// ToResponse shapes a provider order into the client-facing checkout
// handoff payload.
func ToResponse(order *Order, keyID string) *models.CreateOrderResponse {
	return &models.CreateOrderResponse{
		Success:  true,
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    keyID,
	}
}
