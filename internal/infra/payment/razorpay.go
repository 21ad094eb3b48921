package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/BruksfildServices01/salon-booking/internal/domain/booking"
)

type RazorpayGateway struct {
	client *razorpay.Client
	secret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret), secret: keySecret}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: response without id")
	}

	return &Order{
		ID:       id,
		Amount:   req.Amount,
		Currency: req.Currency,
		Provider: "razorpay",
	}, nil
}

// Confirm checks the checkout signature over "orderID|paymentID" with the
// key secret. No network call is made.
func (g *RazorpayGateway) Confirm(_ context.Context, c Confirmation) (*Capture, error) {
	if !booking.VerifySignature(g.secret, c.OrderID, c.PaymentID, c.Signature) {
		return nil, ErrUnverified
	}
	return &Capture{PaymentID: c.PaymentID}, nil
}

var _ Gateway = (*RazorpayGateway)(nil)
