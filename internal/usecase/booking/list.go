package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type ListSalonBookings struct {
	repo domain.Repository
}

func NewListSalonBookings(repo domain.Repository) *ListSalonBookings {
	return &ListSalonBookings{repo: repo}
}

// Execute lists a salon's bookings newest first; only that salon's partner
// may read them.
func (uc *ListSalonBookings) Execute(
	ctx context.Context,
	requester auth.Principal,
	salonID string,
) ([]dto.SalonBookingDTO, error) {

	if !requester.Is(auth.KindPartner, salonID) {
		return nil, httperr.Forbidden("not_owner", "You can only view your own salon's bookings.")
	}

	list, err := uc.repo.ListBookingsForSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SalonBookingDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewSalonBookingDTO(&list[i]))
	}
	return out, nil
}

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

// Execute lists the requester's own bookings. sort is date-asc or
// date-desc, defaulting to newest first.
func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	requester auth.Principal,
	status string,
	sort string,
) ([]dto.CustomerBookingDTO, error) {

	if !requester.IsCustomer() {
		return nil, httperr.Unauthorized("wrong_role", "Customer access required.")
	}

	list, err := uc.repo.ListBookingsForCustomer(ctx, requester.ID(), domain.ListFilter{
		Status:    status,
		Ascending: strings.EqualFold(strings.TrimSpace(sort), "date-asc"),
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerBookingDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewCustomerBookingDTO(&list[i]))
	}
	return out, nil
}
