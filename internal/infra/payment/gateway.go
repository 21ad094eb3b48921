package payment

import (
	"context"
	"errors"
	"math"
)

type OrderRequest struct {
	// Amount is in minor units (paise for INR).
	Amount      int64
	Currency    string
	Receipt     string
	Description string
}

type Order struct {
	ID          string `json:"id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Provider    string `json:"provider"`
	CheckoutURL string `json:"checkoutUrl,omitempty"`
}

// Confirmation is what the checkout handed back to the customer.
type Confirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Capture is a payment the provider vouches for. Receipt and Amount are
// only set by providers that report them.
type Capture struct {
	PaymentID string
	Receipt   string
	Amount    int64
}

// ErrUnverified means the provider does not vouch for the payment.
var ErrUnverified = errors.New("payment not verified by provider")

// Gateway creates payment orders at an external provider and confirms
// the payments made against them.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	Confirm(ctx context.Context, c Confirmation) (*Capture, error)
}

// Notification is an inbound provider webhook.
type Notification struct {
	Topic     string
	DataID    string
	RequestID string
	Signature string
}

// WebhookSource is implemented by gateways that push payment notifications.
type WebhookSource interface {
	VerifyWebhook(n Notification) bool
	Lookup(ctx context.Context, paymentID string) (*Capture, error)
}

// MinorUnits converts a decimal amount to the provider's integer unit.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
