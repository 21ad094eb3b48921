package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const mpApproved = "approved"

type paymentReader interface {
	Get(ctx context.Context, id int) (*mppayment.Response, error)
}

// MercadoPagoGateway maps an order to a checkout preference; the preference
// id plays the role of the order id. Payments are confirmed by reading them
// back from the API, never from what the browser reports.
type MercadoPagoGateway struct {
	preferences   preference.Client
	payments      paymentReader
	webhookSecret string
}

func NewMercadoPagoGateway(accessToken, webhookSecret string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPagoGateway{
		preferences:   preference.NewClient(cfg),
		payments:      mppayment.NewClient(cfg),
		webhookSecret: webhookSecret,
	}, nil
}

func (g *MercadoPagoGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	title := req.Description
	if title == "" {
		title = "Salon booking " + req.Receipt
	}

	res, err := g.preferences.Create(ctx, preference.Request{
		ExternalReference: req.Receipt,
		Items: []preference.ItemRequest{
			{
				ID:         req.Receipt,
				Title:      title,
				Quantity:   1,
				UnitPrice:  float64(req.Amount) / 100,
				CurrencyID: req.Currency,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preference: %w", err)
	}

	return &Order{
		ID:          res.ID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Provider:    "mercadopago",
		CheckoutURL: res.InitPoint,
	}, nil
}

// Confirm ignores the signature; the checkout redirect carries none.
func (g *MercadoPagoGateway) Confirm(ctx context.Context, c Confirmation) (*Capture, error) {
	return g.Lookup(ctx, c.PaymentID)
}

// Lookup reads the payment and accepts it only once approved.
func (g *MercadoPagoGateway) Lookup(ctx context.Context, paymentID string) (*Capture, error) {
	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil || id <= 0 {
		return nil, ErrUnverified
	}

	res, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}
	if res.Status != mpApproved {
		return nil, ErrUnverified
	}

	return &Capture{
		PaymentID: strconv.Itoa(res.ID),
		Receipt:   res.ExternalReference,
		Amount:    MinorUnits(res.TransactionAmount),
	}, nil
}

// VerifyWebhook checks the x-signature header ("ts=...,v1=...") against the
// HMAC-SHA256 of the notification manifest.
func (g *MercadoPagoGateway) VerifyWebhook(n Notification) bool {
	if g.webhookSecret == "" || n.DataID == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(n.Signature, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	expected := signWebhook(g.webhookSecret, webhookManifest(n.DataID, n.RequestID, ts))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(v1)))
}

func webhookManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	b.WriteString("id:" + strings.ToLower(dataID) + ";")
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")
	return b.String()
}

func signWebhook(secret, manifest string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return hex.EncodeToString(mac.Sum(nil))
}

var (
	_ Gateway       = (*MercadoPagoGateway)(nil)
	_ WebhookSource = (*MercadoPagoGateway)(nil)
)
