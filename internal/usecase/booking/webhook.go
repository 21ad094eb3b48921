package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/payment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ConfirmProviderPayment applies a payment notification pushed by the
// provider. It reaches the same state as VerifyPayment and is safe to run
// after it.
type ConfirmProviderPayment struct {
	repo     domain.Repository
	source   payment.WebhookSource
	provider string
	notify   Notifier
	now      func() time.Time
}

func NewConfirmProviderPayment(
	repo domain.Repository,
	source payment.WebhookSource,
	provider string,
	n Notifier,
) *ConfirmProviderPayment {
	return &ConfirmProviderPayment{repo: repo, source: source, provider: provider, notify: n, now: time.Now}
}

// Execute returns nil, nil when the notification carries nothing to apply
// (other topics, payments not approved yet).
func (uc *ConfirmProviderPayment) Execute(
	ctx context.Context,
	n payment.Notification,
) (*models.Booking, error) {

	if !uc.source.VerifyWebhook(n) {
		return nil, httperr.InvalidSignature("Webhook signature verification failed.")
	}
	if n.Topic != "" && n.Topic != "payment" {
		return nil, nil
	}

	capture, err := uc.source.Lookup(ctx, n.DataID)
	if errors.Is(err, payment.ErrUnverified) {
		return nil, nil
	}
	if err != nil {
		uc.notify.logger().Error("lookup payment failed", zap.String("payment_id", n.DataID), zap.Error(err))
		return nil, httperr.Upstream("payment_provider_failed", "Failed to read payment.", err)
	}
	if capture.Receipt == "" {
		return nil, httperr.Validation("payment_mismatch", "Payment carries no booking reference.")
	}

	b, err := uc.repo.GetBooking(ctx, capture.Receipt)
	if err != nil {
		return nil, err
	}
	if err := matchCapture(capture, b); err != nil {
		return nil, err
	}

	return applyCapture(ctx, uc.repo, uc.notify, auth.Provider(uc.provider), b.ID, b.RazorpayOrderID, capture.PaymentID, uc.now())
}
