package identity

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// Repository is the identity directory. Lookups by phone expect E.164 input
// and return a NotFound error when nothing matches.
type Repository interface {
	// -------- Customer --------
	FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error

	// -------- Salon partner --------
	FindSalonByPhone(ctx context.Context, phone string) (*models.Salon, error)
	GetSalon(ctx context.Context, id string) (*models.Salon, error)
	CreateSalon(ctx context.Context, s *models.Salon) error
}
