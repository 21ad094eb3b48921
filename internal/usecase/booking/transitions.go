package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// SETTLE CASH
// ======================================================

// SettleCashBooking is the final-payment step for Cash on Service. Either
// party to the booking may settle it.
type SettleCashBooking struct {
	repo   domain.Repository
	notify Notifier
	now    func() time.Time
}

func NewSettleCashBooking(repo domain.Repository, n Notifier) *SettleCashBooking {
	return &SettleCashBooking{repo: repo, notify: n, now: time.Now}
}

func (uc *SettleCashBooking) Execute(
	ctx context.Context,
	requester auth.Principal,
	bookingID string,
) (*models.Booking, error) {

	now := uc.now()
	var (
		tr     domain.Transition
		before models.Booking
	)
	updated, err := uc.repo.UpdateBooking(ctx, bookingID, func(cur *models.Booking) error {
		if !requester.Is(auth.KindCustomer, cur.CustomerID) && !requester.Is(auth.KindPartner, cur.SalonID) {
			return httperr.Forbidden("not_owner", "Unauthorized for this booking.")
		}
		before = *cur
		var err error
		tr, err = domain.SettleCash(cur, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notify.transition(ctx, requester, "cash_settled", updated, tr, &before, now)
	return updated, nil
}

// ======================================================
// PARTNER STATUS
// ======================================================

type SetBookingStatus struct {
	repo   domain.Repository
	notify Notifier
	now    func() time.Time
}

func NewSetBookingStatus(repo domain.Repository, n Notifier) *SetBookingStatus {
	return &SetBookingStatus{repo: repo, notify: n, now: time.Now}
}

func (uc *SetBookingStatus) Execute(
	ctx context.Context,
	requester auth.Principal,
	bookingID string,
	status string,
) (*models.Booking, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	var (
		tr     domain.Transition
		before models.Booking
	)
	updated, err := uc.repo.UpdateBooking(ctx, bookingID, func(cur *models.Booking) error {
		if !requester.Is(auth.KindPartner, cur.SalonID) {
			return httperr.Forbidden("not_owner", "This booking belongs to another salon.")
		}
		before = *cur
		var err error
		tr, err = domain.SetStatus(cur, next, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notify.transition(ctx, requester, "booking_status_changed", updated, tr, &before, now)
	return updated, nil
}

// ======================================================
// CUSTOMER CANCEL
// ======================================================

type CancelOwnBooking struct {
	repo   domain.Repository
	notify Notifier
	now    func() time.Time
}

func NewCancelOwnBooking(repo domain.Repository, n Notifier) *CancelOwnBooking {
	return &CancelOwnBooking{repo: repo, notify: n, now: time.Now}
}

func (uc *CancelOwnBooking) Execute(
	ctx context.Context,
	requester auth.Principal,
	bookingID string,
) (*models.Booking, error) {

	now := uc.now()
	var (
		tr     domain.Transition
		before models.Booking
	)
	updated, err := uc.repo.UpdateBooking(ctx, bookingID, func(cur *models.Booking) error {
		if !requester.Is(auth.KindCustomer, cur.CustomerID) {
			return httperr.Forbidden("not_owner", "You can only cancel your own bookings.")
		}
		before = *cur
		var err error
		tr, err = domain.CancelByCustomer(cur, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.notify.transition(ctx, requester, "booking_cancelled", updated, tr, &before, now)
	return updated, nil
}
