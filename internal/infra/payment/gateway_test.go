package payment

import (
	"context"
	"errors"
	"testing"

	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(15000), MinorUnits(150))
	assert.Equal(t, int64(19999), MinorUnits(199.99))
	assert.Equal(t, int64(1), MinorUnits(0.005))
	assert.Equal(t, int64(0), MinorUnits(0))
}

func TestRazorpayConfirm(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "rzp_test_secret")
	ctx := context.Background()

	c, err := g.Confirm(ctx, Confirmation{
		OrderID:   "order_9A33XWu170gUtm",
		PaymentID: "pay_29QQoUBi66xm2f",
		Signature: "3260a4f62b64907cfd92766c15dea1480ad753cedc90248b8346f48f243993c1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_29QQoUBi66xm2f", c.PaymentID)

	_, err = g.Confirm(ctx, Confirmation{OrderID: "order_9A33XWu170gUtm", PaymentID: "pay_29QQoUBi66xm2f"})
	assert.ErrorIs(t, err, ErrUnverified)
}

// ======================================================
// MERCADO PAGO
// ======================================================

type fakePayments struct {
	byID map[int]*mppayment.Response
	err  error
}

func (f *fakePayments) Get(_ context.Context, id int) (*mppayment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	res, ok := f.byID[id]
	if !ok {
		return nil, errors.New("404 payment not found")
	}
	return res, nil
}

func mpGateway(p *fakePayments) *MercadoPagoGateway {
	return &MercadoPagoGateway{payments: p, webhookSecret: "mp_webhook_secret"}
}

func TestMercadoPagoLookup(t *testing.T) {
	g := mpGateway(&fakePayments{byID: map[int]*mppayment.Response{
		123456789: {ID: 123456789, Status: "approved", ExternalReference: "booking-1", TransactionAmount: 150},
		222:       {ID: 222, Status: "pending", ExternalReference: "booking-1", TransactionAmount: 150},
	}})
	ctx := context.Background()

	c, err := g.Confirm(ctx, Confirmation{OrderID: "pref-1", PaymentID: "123456789"})
	require.NoError(t, err)
	assert.Equal(t, &Capture{PaymentID: "123456789", Receipt: "booking-1", Amount: 15000}, c)

	_, err = g.Lookup(ctx, "222")
	assert.ErrorIs(t, err, ErrUnverified)

	_, err = g.Lookup(ctx, "pay_abc")
	assert.ErrorIs(t, err, ErrUnverified)

	_, err = g.Lookup(ctx, "999")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnverified)
}

func TestMercadoPagoVerifyWebhook(t *testing.T) {
	g := mpGateway(&fakePayments{})

	signed := Notification{
		Topic:     "payment",
		DataID:    "123456789",
		RequestID: "bb56a2f1-6aae-46ac-982e-9dcd3581d08e",
		Signature: "ts=1704908010,v1=516fa404f115c24c379ac1da33041ee77e307916df5c1baa327d53976667b7b4",
	}
	assert.True(t, g.VerifyWebhook(signed))

	noRequestID := Notification{
		DataID:    "ABC123",
		Signature: "ts=1704908010, v1=e94b6ba52da083170c1ea522e4f981a5c816d9f6b5684f324c94ba4fcd4d1449",
	}
	assert.True(t, g.VerifyWebhook(noRequestID))

	tampered := signed
	tampered.DataID = "123456780"
	assert.False(t, g.VerifyWebhook(tampered))

	replayed := signed
	replayed.Signature = "ts=1704908011,v1=516fa404f115c24c379ac1da33041ee77e307916df5c1baa327d53976667b7b4"
	assert.False(t, g.VerifyWebhook(replayed))

	unsigned := signed
	unsigned.Signature = ""
	assert.False(t, g.VerifyWebhook(unsigned))

	g.webhookSecret = ""
	assert.False(t, g.VerifyWebhook(signed))
}
