package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalon(
	ctx context.Context,
	id string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Preload("Services", "active = ?", true).
		Where("id = ?", id).
		First(&salon).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	return &salon, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return translate(
		r.db.WithContext(ctx).Omit("Customer", "Salon").Create(b).Error,
		"booking_not_found", "Booking not found.",
	)
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&b).Error; err != nil {
		return nil, translate(err, "booking_not_found", "Booking not found.")
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	id string,
	mutate func(b *models.Booking) error,
) (*models.Booking, error) {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&b).Error; err != nil {
			return err
		}

		if err := mutate(&b); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&b).Error
	})
	if err != nil {
		return nil, translate(err, "booking_not_found", "Booking not found.")
	}

	return r.GetBooking(ctx, id)
}

// --------------------------------------------------
// Projections
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForSalon(
	ctx context.Context,
	salonID string,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		Where("salon_id = ?", salonID).
		Order("scheduled_at DESC, created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translate(err, "booking_not_found", "Booking not found.")
	}
	return out, nil
}

func (r *BookingGormRepository) ListBookingsForCustomer(
	ctx context.Context,
	customerID string,
	filter domain.ListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Salon").
		Where("customer_id = ?", customerID)

	if s := strings.TrimSpace(filter.Status); s != "" {
		q = q.Where("UPPER(booking_status) = ?", strings.ToUpper(s))
	}

	order := "scheduled_at DESC, created_at DESC"
	if filter.Ascending {
		order = "scheduled_at ASC, created_at ASC"
	}

	var out []models.Booking
	if err := q.Order(order).Find(&out).Error; err != nil {
		return nil, translate(err, "booking_not_found", "Booking not found.")
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
