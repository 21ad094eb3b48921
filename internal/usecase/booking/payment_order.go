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

type CreatePaymentOrder struct {
	repo     domain.Repository
	gateway  payment.Gateway
	currency string
	notify   Notifier
}

func NewCreatePaymentOrder(
	repo domain.Repository,
	gateway payment.Gateway,
	currency string,
	n Notifier,
) *CreatePaymentOrder {
	if currency == "" {
		currency = "INR"
	}
	return &CreatePaymentOrder{repo: repo, gateway: gateway, currency: currency, notify: n}
}

// Execute creates the provider order outside the row lock and attaches it
// under the lock, re-checking state. If the booking moved on meanwhile the
// order is left unused at the provider.
func (uc *CreatePaymentOrder) Execute(
	ctx context.Context,
	requester auth.Principal,
	bookingID string,
) (*payment.Order, *models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !requester.Is(auth.KindCustomer, b.CustomerID) {
		return nil, nil, httperr.Forbidden("not_owner", "Unauthorized for this booking.")
	}
	if err := domain.CanCreateOrder(domain.Status(b.BookingStatus), domain.PaymentStatus(b.PaymentStatus)); err != nil {
		return nil, nil, err
	}

	order, err := uc.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:      payment.MinorUnits(b.TotalPrice),
		Currency:    uc.currency,
		Receipt:     b.ID,
		Description: "Salon booking " + b.ID,
	})
	if err != nil {
		uc.notify.logger().Error("create payment order failed", zap.String("booking_id", b.ID), zap.Error(err))
		return nil, nil, httperr.Upstream("payment_provider_failed", "Failed to create payment order.", err)
	}

	updated, err := uc.repo.UpdateBooking(ctx, b.ID, func(cur *models.Booking) error {
		return domain.AttachOrder(cur, order.ID)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.notify.record(requester, "payment_order_created", updated, map[string]any{
		"orderId": order.ID,
		"amount":  order.Amount,
	})

	return order, updated, nil
}

// ======================================================

type VerifyPaymentInput struct {
	BookingID string
	OrderID   string
	PaymentID string
	Signature string
}

type VerifyPayment struct {
	repo    domain.Repository
	gateway payment.Gateway
	notify  Notifier
	now     func() time.Time
}

func NewVerifyPayment(repo domain.Repository, gateway payment.Gateway, n Notifier) *VerifyPayment {
	return &VerifyPayment{repo: repo, gateway: gateway, notify: n, now: time.Now}
}

func (uc *VerifyPayment) Execute(
	ctx context.Context,
	requester auth.Principal,
	in VerifyPaymentInput,
) (*models.Booking, error) {

	if in.OrderID == "" || in.PaymentID == "" {
		return nil, httperr.Validation("missing_fields", "Payment confirmation is incomplete.")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !requester.Is(auth.KindCustomer, b.CustomerID) {
		return nil, httperr.NotFound("order_mismatch", "Booking or order ID mismatch.")
	}
	if b.RazorpayOrderID == "" || b.RazorpayOrderID != in.OrderID {
		return nil, httperr.NotFound("order_mismatch", "Booking or order ID mismatch.")
	}

	capture, err := uc.gateway.Confirm(ctx, payment.Confirmation{
		OrderID:   in.OrderID,
		PaymentID: in.PaymentID,
		Signature: in.Signature,
	})
	if errors.Is(err, payment.ErrUnverified) {
		uc.notify.record(requester, "payment_signature_rejected", b, map[string]string{"orderId": in.OrderID})
		return nil, httperr.InvalidSignature("Payment verification failed.")
	}
	if err != nil {
		uc.notify.logger().Error("confirm payment failed", zap.String("booking_id", b.ID), zap.Error(err))
		return nil, httperr.Upstream("payment_provider_failed", "Failed to verify payment.", err)
	}
	if err := matchCapture(capture, b); err != nil {
		uc.notify.record(requester, "payment_signature_rejected", b, map[string]string{"orderId": in.OrderID})
		return nil, err
	}

	return applyCapture(ctx, uc.repo, uc.notify, requester, b.ID, in.OrderID, capture.PaymentID, uc.now())
}

// matchCapture rejects a provider capture that belongs to another booking
// or covers a different amount.
func matchCapture(c *payment.Capture, b *models.Booking) error {
	if c.Receipt != "" && c.Receipt != b.ID {
		return httperr.Validation("payment_mismatch", "Payment does not belong to this booking.")
	}
	if c.Amount != 0 && c.Amount != payment.MinorUnits(b.TotalPrice) {
		return httperr.Validation("payment_mismatch", "Payment amount does not match this booking.")
	}
	return nil
}

// applyCapture confirms a provider-vouched payment under the row lock. A
// capture the booking can no longer take is turned into a refund request.
func applyCapture(
	ctx context.Context,
	repo domain.Repository,
	notify Notifier,
	actor auth.Principal,
	bookingID, orderID, paymentID string,
	now time.Time,
) (*models.Booking, error) {

	var (
		tr     domain.Transition
		before models.Booking
	)
	updated, err := repo.UpdateBooking(ctx, bookingID, func(cur *models.Booking) error {
		if cur.RazorpayOrderID == "" || cur.RazorpayOrderID != orderID {
			return httperr.NotFound("order_mismatch", "Booking or order ID mismatch.")
		}
		before = *cur
		var err error
		tr, err = domain.ConfirmPayment(cur, paymentID, now)
		return err
	})
	if err != nil {
		if before.ID != "" {
			paid := before
			paid.RazorpayPaymentID = paymentID
			switch {
			case httperr.Is(err, "invalid_state"):
				notify.refund(ctx, actor, &paid, "payment captured for a closed booking", now)
			case httperr.Is(err, "already_paid"):
				notify.refund(ctx, actor, &paid, "duplicate payment", now)
			}
		}
		return nil, err
	}

	if tr.Captured {
		notify.transition(ctx, actor, "payment_verified", updated, tr, &before, now)
	}
	return updated, nil
}
