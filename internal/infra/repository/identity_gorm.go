package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/domain/identity"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type IdentityGormRepository struct {
	db *gorm.DB
}

func NewIdentityGormRepository(db *gorm.DB) *IdentityGormRepository {
	return &IdentityGormRepository{db: db}
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *IdentityGormRepository) FindCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&c).Error; err != nil {
		return nil, translate(err, "user_not_found", "User not found. Please sign up.")
	}
	return &c, nil
}

func (r *IdentityGormRepository) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(err, "user_not_found", "User not found.")
	}
	return &c, nil
}

func (r *IdentityGormRepository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "user_not_found", "User not found.")
}

// --------------------------------------------------
// Salon partner
// --------------------------------------------------

func (r *IdentityGormRepository) FindSalonByPhone(ctx context.Context, phone string) (*models.Salon, error) {
	var s models.Salon
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&s).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found. Please register.")
	}
	return &s, nil
}

func (r *IdentityGormRepository) GetSalon(ctx context.Context, id string) (*models.Salon, error) {
	var s models.Salon
	if err := r.db.WithContext(ctx).Preload("Services").Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	return &s, nil
}

// CreateSalon inserts the salon together with its catalog.
func (r *IdentityGormRepository) CreateSalon(ctx context.Context, s *models.Salon) error {
	return translate(r.db.WithContext(ctx).Create(s).Error, "salon_not_found", "Salon not found.")
}

// --------------------------------------------------
// Session guard lookups
// --------------------------------------------------

func (r *IdentityGormRepository) CustomerExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, &models.Customer{}, id)
}

func (r *IdentityGormRepository) SalonExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, &models.Salon{}, id)
}

func (r *IdentityGormRepository) exists(ctx context.Context, model any, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err, "not_found", "Not found.")
	}
	return count > 0, nil
}

var _ identity.Repository = (*IdentityGormRepository)(nil)
