package payment

import (
	"context"
)

// PaymentStatusPaid is the settled state a checkout session must reach
// before an order may be created for it.
const PaymentStatusPaid = "paid"

// CheckoutProvider abstracts the hosted-checkout surface of a payment
// processor: create a session, retrieve it after the success callback, and
// mint a one-off percentage discount to attach to a session.
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, request *CheckoutSessionRequest) (*CheckoutSessionResponse, error)
	RetrieveCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSessionDetails, error)
	CreateDiscount(ctx context.Context, percentage float64) (string, error)
}

type CheckoutLineItem struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	UnitAmount int64  `json:"unit_amount"` // minor currency units
	Quantity   int64  `json:"quantity"`
}

type CheckoutSessionRequest struct {
	LineItems  []CheckoutLineItem `json:"line_items"`
	Currency   string             `json:"currency"`
	SuccessURL string             `json:"success_url"`
	CancelURL  string             `json:"cancel_url"`
	DiscountID string             `json:"discount_id,omitempty"`
	Metadata   map[string]string  `json:"metadata"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
}

// CheckoutSessionDetails is the processor's authoritative view of a session.
// AmountTotal is what was actually charged, in minor currency units; the
// metadata is the blob recorded at session creation.
type CheckoutSessionDetails struct {
	SessionID     string            `json:"session_id"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Metadata      map[string]string `json:"metadata"`
}
