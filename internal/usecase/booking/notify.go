package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/infra/events"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Notifier fans a committed transition out to the audit trail and the
// event bus. Neither can fail the request.
type Notifier struct {
	audit     *audit.Dispatcher
	publisher events.Publisher
	log       *zap.Logger
}

func NewNotifier(a *audit.Dispatcher, p events.Publisher, log *zap.Logger) Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return Notifier{audit: a, publisher: p, log: log}
}

func (n Notifier) logger() *zap.Logger {
	if n.log == nil {
		return zap.NewNop()
	}
	return n.log
}

func (n Notifier) record(actor auth.Principal, action string, b *models.Booking, meta any) {
	n.audit.Dispatch(audit.Event{
		SalonID:   b.SalonID,
		ActorID:   actor.ID(),
		ActorKind: actor.Kind().String(),
		Action:    action,
		Entity:    "booking",
		EntityID:  b.ID,
		Metadata:  meta,
	})
}

func (n Notifier) publish(ctx context.Context, key string, payload any) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, key, payload); err != nil {
		n.logger().Error("publish event failed", zap.String("key", key), zap.Error(err))
	}
}

func (n Notifier) transition(ctx context.Context, actor auth.Principal, action string, b *models.Booking, tr domain.Transition, prev *models.Booking, now time.Time) {
	n.record(actor, action, b, map[string]string{
		"bookingStatus": b.BookingStatus,
		"paymentStatus": b.PaymentStatus,
	})

	ev := events.BookingEvent{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		SalonID:    b.SalonID,
		Status:     b.BookingStatus,
		Payment:    b.PaymentStatus,
		Amount:     b.TotalPrice,
		OccurredAt: now,
	}

	if tr.Captured {
		n.publish(ctx, events.KeyPaymentCaptured, ev)
	}
	if domain.Status(b.BookingStatus) == domain.StatusCancelled && (prev == nil || prev.BookingStatus != b.BookingStatus) {
		n.publish(ctx, events.KeyBookingCancelled, ev)
	}
	if tr.RefundRequired {
		n.refund(ctx, actor, prev, "booking cancelled after payment", now)
	}
}

// refund raises RefundRequired from the pre-transition snapshot, which
// still carries the paid facts.
func (n Notifier) refund(ctx context.Context, actor auth.Principal, paid *models.Booking, reason string, now time.Time) {
	n.record(actor, "refund_required", paid, map[string]string{
		"paymentId": paid.RazorpayPaymentID,
		"reason":    reason,
	})
	n.publish(ctx, events.KeyRefundRequired, events.RefundRequired{
		BookingID:  paid.ID,
		CustomerID: paid.CustomerID,
		SalonID:    paid.SalonID,
		OrderID:    paid.RazorpayOrderID,
		PaymentID:  paid.RazorpayPaymentID,
		Amount:     paid.TotalPrice,
		Reason:     reason,
		OccurredAt: now,
	})
}
