package payment

import (
	"context"
	"net/http"
)

// Gateway is the payment processor boundary. The rest of the system
// treats it as an opaque source of checkout sessions and paid/unpaid
// facts; gateway failures are retryable upstream errors, never silent
// order loss.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
	VerifyWebhookSignature(r *http.Request) error
}

// LineItem is one priced row of a checkout session, denominated in
// cents at session-creation time.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type CreateSessionParams struct {
	LineItems     []LineItem
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

type CustomerDetails struct {
	Email   string
	Address string
}

// Session mirrors the gateway's view of a checkout session.
// PaymentStatus is the gateway's own vocabulary ("paid", "unpaid").
type Session struct {
	ID              string
	URL             string
	PaymentStatus   string
	CustomerEmail   string
	Metadata        map[string]string
	CustomerDetails *CustomerDetails
}

const PaymentStatusPaid = "paid"
