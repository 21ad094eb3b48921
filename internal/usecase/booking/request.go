package booking

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type LineItemInput struct {
	ServiceID string
	Name      string
	Price     float64
}

type RequestBookingInput struct {
	CustomerID    string
	SalonID       string
	Items         []LineItemInput
	Date          string
	Time          string
	TotalPrice    float64
	PaymentMethod string
}

// totals may differ from the line-item sum by float noise only
const totalTolerance = 0.01

// ======================================================
// USE CASE
// ======================================================

type RequestBooking struct {
	repo   domain.Repository
	notify Notifier
	loc    *time.Location
	now    func() time.Time
}

// NewRequestBooking reads requested dates and times as wall clock in tz.
func NewRequestBooking(repo domain.Repository, n Notifier, tz string) *RequestBooking {
	loc := timezone.Location(tz)
	return &RequestBooking{
		repo:   repo,
		notify: n,
		loc:    loc,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *RequestBooking) Execute(
	ctx context.Context,
	in RequestBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	if in.CustomerID == "" || in.SalonID == "" || len(in.Items) == 0 ||
		strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" ||
		in.TotalPrice <= 0 {
		return nil, httperr.Validation("missing_fields", "Please fill in all required fields.")
	}

	method, err := domain.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	scheduledAt, clock, err := domain.ParseSlot(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Salon and catalog
	// --------------------------------------------------
	salon, err := uc.repo.GetSalon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	if salon.Status == string(identity.SalonSuspended) {
		return nil, httperr.InvalidOperation("salon_unavailable", "This salon is not accepting bookings.")
	}

	items, err := priceItems(salon, in.Items)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Server-side total
	// --------------------------------------------------
	var total float64
	for _, it := range items {
		total += it.Price
	}
	total = math.Round(total*100) / 100
	if math.Abs(total-in.TotalPrice) > totalTolerance {
		return nil, httperr.Validation("total_mismatch", "Total price does not match the selected services.")
	}

	b := &models.Booking{
		ID:            uuid.NewString(),
		CustomerID:    in.CustomerID,
		SalonID:       salon.ID,
		Items:         items,
		Date:          scheduledAt.Format(domain.DateLayout),
		Time:          clock,
		ScheduledAt:   scheduledAt,
		TotalPrice:    total,
		PaymentMethod: string(method),
		BookingStatus: string(domain.InitialStatus(method)),
		PaymentStatus: string(domain.PaymentPending),
		CreatedAt:     uc.now(),
	}
	for i := range b.Items {
		b.Items[i].BookingID = b.ID
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.notify.record(auth.Customer(in.CustomerID), "booking_requested", b, map[string]any{
		"totalPrice":    b.TotalPrice,
		"paymentMethod": b.PaymentMethod,
	})

	return b, nil
}

// priceItems resolves each line against the salon catalog, by id when given
// and otherwise by name. Catalog prices win over client prices.
func priceItems(salon *models.Salon, in []LineItemInput) ([]models.BookingItem, error) {
	byID := make(map[string]models.SalonService, len(salon.Services))
	byName := make(map[string]models.SalonService, len(salon.Services))
	for _, s := range salon.Services {
		if !s.Active {
			continue
		}
		byID[s.ID] = s
		byName[strings.ToLower(strings.TrimSpace(s.Name))] = s
	}

	out := make([]models.BookingItem, 0, len(in))
	for _, it := range in {
		svc, ok := byID[it.ServiceID]
		if !ok {
			svc, ok = byName[strings.ToLower(strings.TrimSpace(it.Name))]
		}
		if !ok {
			return nil, httperr.Validation("unknown_service", "Service "+it.Name+" is not offered by this salon.")
		}
		out = append(out, models.BookingItem{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Price:     svc.Price,
		})
	}
	return out, nil
}
