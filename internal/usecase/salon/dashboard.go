package salon

import (
	"context"
	"time"

	"github.com/jinzhu/now"

	"github.com/BruksfildServices01/salon-booking/internal/auth"
	"github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type DashboardView struct {
	Salon *models.Salon `json:"salon"`
	salon.Stats
}

type Dashboard struct {
	repo salon.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewDashboard(repo salon.Repository, tz string) *Dashboard {
	return &Dashboard{repo: repo, loc: timezone.Location(tz), now: time.Now}
}

// Execute returns the partner's own dashboard. Month figures cover paid
// bookings dated in the current calendar month of the salon timezone.
func (uc *Dashboard) Execute(ctx context.Context, requester auth.Principal, salonID string) (*DashboardView, error) {
	if !requester.Is(auth.KindPartner, salonID) {
		return nil, httperr.Forbidden("not_owner", "You can only view your own dashboard.")
	}

	s, err := uc.repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.repo.SalonStats(ctx, salonID, uc.window())
	if err != nil {
		return nil, err
	}

	return &DashboardView{Salon: s, Stats: *stats}, nil
}

func (uc *Dashboard) window() salon.StatsWindow {
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: uc.loc}
	n := cfg.With(uc.now().In(uc.loc))

	return salon.StatsWindow{
		Today:      n.Format(time.DateOnly),
		MonthStart: n.BeginningOfMonth().Format(time.DateOnly),
		MonthEnd:   n.EndOfMonth().Format(time.DateOnly),
	}
}
