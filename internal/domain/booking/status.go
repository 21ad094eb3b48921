package booking

import (
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending        Status = "PENDING"
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusConfirmed      Status = "CONFIRMED"
	StatusCancelled      Status = "CANCELLED"
	StatusCompleted      Status = "COMPLETED"

	// StatusScheduled is a legacy name still present on old records.
	StatusScheduled Status = "SCHEDULED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus case-normalizes s and rejects unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusPendingPayment, StatusConfirmed,
		StatusCancelled, StatusCompleted, StatusScheduled:
		return st, nil
	}
	return "", httperr.Validation("invalid_status", "Unknown booking status.")
}

// ===============================
// Payment
// ===============================

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentPaid      PaymentStatus = "Paid"
	PaymentCancelled PaymentStatus = "Cancelled"
)

type PaymentMethod string

const (
	MethodOnline PaymentMethod = "Online"
	MethodCash   PaymentMethod = "Cash on Service"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.TrimSpace(s)); m {
	case MethodOnline, MethodCash:
		return m, nil
	}
	return "", httperr.Validation("invalid_payment_method", "Payment method must be Online or Cash on Service.")
}

// InitialStatus picks the starting state from the payment method.
func InitialStatus(m PaymentMethod) Status {
	if m == MethodOnline {
		return StatusPendingPayment
	}
	return StatusPending
}

// ===============================
// Validations
// ===============================

func CanCancelOwn(current Status) error {
	switch current {
	case StatusPending, StatusConfirmed, StatusScheduled:
		return nil
	}
	return httperr.InvalidOperation("invalid_state", "This booking can no longer be cancelled.")
}

func CanCreateOrder(current Status, payment PaymentStatus) error {
	if payment == PaymentPaid {
		return httperr.AlreadyPaid()
	}
	if current.IsTerminal() {
		return httperr.InvalidOperation("invalid_state", "This booking is closed.")
	}
	return nil
}

func CanSettleCash(method PaymentMethod, payment PaymentStatus) error {
	if method != MethodCash || payment != PaymentPending {
		return httperr.InvalidOperation("invalid_operation", "Only pending cash bookings can be settled.")
	}
	return nil
}
