package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition reports what a mutation did to the payment side of a booking.
type Transition struct {
	// RefundRequired is set when a paid booking is cancelled.
	RefundRequired bool
	// Captured is set when the booking moved to Paid.
	Captured bool
}

func AttachOrder(b *models.Booking, orderID string) error {
	if err := CanCreateOrder(Status(b.BookingStatus), PaymentStatus(b.PaymentStatus)); err != nil {
		return err
	}
	b.RazorpayOrderID = orderID
	return nil
}

// ConfirmPayment applies a verified gateway confirmation. Replaying the same
// transaction is a no-op.
func ConfirmPayment(b *models.Booking, paymentID string, now time.Time) (Transition, error) {
	if PaymentStatus(b.PaymentStatus) == PaymentPaid {
		if b.RazorpayPaymentID == paymentID {
			return Transition{}, nil
		}
		return Transition{}, httperr.AlreadyPaid()
	}
	if Status(b.BookingStatus).IsTerminal() {
		return Transition{}, httperr.InvalidOperation("invalid_state", "This booking is closed.")
	}

	b.PaymentStatus = string(PaymentPaid)
	b.BookingStatus = string(StatusConfirmed)
	b.RazorpayPaymentID = paymentID
	b.PaidAt = &now
	applyCommission(b)
	return Transition{Captured: true}, nil
}

func SettleCash(b *models.Booking, now time.Time) (Transition, error) {
	if err := CanSettleCash(PaymentMethod(b.PaymentMethod), PaymentStatus(b.PaymentStatus)); err != nil {
		return Transition{}, err
	}

	b.PaymentStatus = string(PaymentPaid)
	b.BookingStatus = string(StatusCompleted)
	b.PaidAt = &now
	b.CompletedAt = &now
	applyCommission(b)
	return Transition{Captured: true}, nil
}

// SetStatus is the partner-driven transition. Closed bookings stay closed.
func SetStatus(b *models.Booking, next Status, now time.Time) (Transition, error) {
	current := Status(b.BookingStatus)
	if current.IsTerminal() && next != current {
		return Transition{}, httperr.InvalidOperation("invalid_state", "This booking is closed.")
	}

	if next == StatusCancelled {
		return cancel(b, now), nil
	}

	b.BookingStatus = string(next)
	if next == StatusCompleted && b.CompletedAt == nil {
		b.CompletedAt = &now
	}
	return Transition{}, nil
}

func CancelByCustomer(b *models.Booking, now time.Time) (Transition, error) {
	if err := CanCancelOwn(Status(b.BookingStatus)); err != nil {
		return Transition{}, err
	}
	return cancel(b, now), nil
}

func cancel(b *models.Booking, now time.Time) Transition {
	wasPaid := PaymentStatus(b.PaymentStatus) == PaymentPaid

	b.BookingStatus = string(StatusCancelled)
	b.PaymentStatus = string(PaymentCancelled)
	if b.CancelledAt == nil {
		b.CancelledAt = &now
	}
	return Transition{RefundRequired: wasPaid}
}

func applyCommission(b *models.Booking) {
	b.CommissionRate = Rate(b.TotalPrice)
	b.CommissionAmount = CommissionAmount(b.TotalPrice)
}
