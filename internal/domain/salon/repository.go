package salon

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type SearchQuery struct {
	// Search matches salon or service names, case-insensitively.
	Search string
	// Service restricts to salons offering a matching service name.
	Service string
}

// Stats are the dashboard counters. Date bounds are inclusive YYYY-MM-DD.
type Stats struct {
	TotalBookings   int64   `json:"totalBookings"`
	TodayBookings   int64   `json:"todayBookings"`
	PendingRequests int64   `json:"pendingRequests"`
	MonthRevenue    float64 `json:"monthRevenue"`
	MonthCommission float64 `json:"monthCommission"`
}

type StatsWindow struct {
	Today      string
	MonthStart string
	MonthEnd   string
}

type ServiceFilter struct {
	Category string
	Query    string
	Active   *bool
}

// CatalogEntry is one row of the public service catalog: a service name
// with the cheapest price any listed salon charges for it.
type CatalogEntry struct {
	Name     string  `json:"name"`
	MinPrice float64 `json:"minPrice"`
	Salons   int64   `json:"salons"`
}

// CustomerSummary is a customer seen from one salon's side.
type CustomerSummary struct {
	ID            string `json:"_id"`
	FullName      string `json:"fullName"`
	PhoneNumber   string `json:"phoneNumber"`
	Bookings      int64  `json:"bookings"`
	LastBookingOn string `json:"lastBookingOn"`
}

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Repository interface {
	// -------- Directory --------
	SearchSalons(ctx context.Context, q SearchQuery) ([]models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	SaveSalonProfile(ctx context.Context, s *models.Salon) error
	SalonStats(ctx context.Context, salonID string, w StatsWindow) (*Stats, error)

	// -------- Catalog --------
	ListServices(ctx context.Context, salonID string, f ServiceFilter) ([]models.SalonService, error)
	GetService(ctx context.Context, salonID, id string) (*models.SalonService, error)
	CreateService(ctx context.Context, s *models.SalonService) error
	SaveService(ctx context.Context, s *models.SalonService) error
	ServiceCatalog(ctx context.Context) ([]CatalogEntry, error)

	// -------- Partner reads --------
	ListCustomers(ctx context.Context, salonID, query string) ([]CustomerSummary, error)
	ListAuditLogs(ctx context.Context, salonID string, f AuditFilter) ([]models.AuditLog, int64, error)
}
