package models

import "time"

// CreateOrderRequest is the payload for starting a payment against an
// earlier enquiry, correlated by its reference id.
type CreateOrderRequest struct {
	Amount        int64  `json:"amount"` // minor currency units (paise)
	Currency      string `json:"currency,omitempty"`
	ReferenceID   string `json:"referenceId"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Division      string `json:"division,omitempty"`
	PaymentType   string `json:"paymentType,omitempty"`
}

// CreateOrderResponse is returned to the client for the checkout handoff.
type CreateOrderResponse struct {
	Success  bool   `json:"success"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId,omitempty"`
}

// VerifyPaymentRequest carries the provider callback fields to be checked
// against the recomputed signature.
type VerifyPaymentRequest struct {
	OrderID     string `json:"orderId"`
	PaymentID   string `json:"paymentId"`
	Signature   string `json:"signature"`
	ReferenceID string `json:"referenceId,omitempty"`
}

// VerifyPaymentResponse reports the verification outcome.
type VerifyPaymentResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId,omitempty"`
}

// PaymentOrder is the log record written for every created order, backed by
// the payment_orders table. The order itself is ephemeral provider state;
// this row exists for correlation and settlement marking only.
type PaymentOrder struct {
	ID            int64       `json:"id"`
	OrderID       string      `json:"order_id"`
	Amount        int64       `json:"amount"`
	Currency      string      `json:"currency"`
	ReferenceID   string      `json:"reference_id"`
	Division      string      `json:"division,omitempty"`
	PaymentType   PaymentType `json:"payment_type,omitempty"`
	CustomerEmail string      `json:"customer_email,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Status        string      `json:"status"`
	PaymentID     string      `json:"payment_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Payment order statuses as stored in payment_orders.status.
const (
	OrderStatusCreated = "created"
	OrderStatusPaid    = "paid"
)
