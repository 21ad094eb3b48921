package events

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	KeyPaymentCaptured  = "booking.payment_captured"
	KeyBookingCancelled = "booking.cancelled"
	KeyRefundRequired   = "booking.refund_required"
)

// Publisher emits domain events for out-of-process consumers such as
// refund reconciliation.
type Publisher interface {
	Publish(ctx context.Context, key string, payload any) error
}

type BookingEvent struct {
	BookingID  string    `json:"bookingId"`
	CustomerID string    `json:"customerId"`
	SalonID    string    `json:"salonId"`
	Status     string    `json:"bookingStatus"`
	Payment    string    `json:"paymentStatus"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurredAt"`
}

// RefundRequired is raised whenever money was captured for a booking that
// ended up cancelled.
type RefundRequired struct {
	BookingID  string    `json:"bookingId"`
	CustomerID string    `json:"customerId"`
	SalonID    string    `json:"salonId"`
	OrderID    string    `json:"orderId"`
	PaymentID  string    `json:"paymentId"`
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurredAt"`
}

// LogPublisher is used when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, key string, payload any) error {
	p.log.Info("domain event", zap.String("key", key), zap.Any("payload", payload))
	return nil
}
