package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ListFilter struct {
	// Status is matched case-insensitively; empty means any.
	Status    string
	Ascending bool
}

type Repository interface {
	// -------- Salon --------
	GetSalon(
		ctx context.Context,
		id string,
	) (*models.Salon, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id string,
	) (*models.Booking, error)

	// UpdateBooking loads the booking under a row lock, applies mutate and
	// persists the whole record atomically. A mutate error aborts the write.
	UpdateBooking(
		ctx context.Context,
		id string,
		mutate func(b *models.Booking) error,
	) (*models.Booking, error)

	// -------- Projections --------
	ListBookingsForSalon(
		ctx context.Context,
		salonID string,
	) ([]models.Booking, error)

	ListBookingsForCustomer(
		ctx context.Context,
		customerID string,
		filter ListFilter,
	) ([]models.Booking, error)
}
