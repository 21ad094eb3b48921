package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/salon"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func (r *SalonGormRepository) SearchSalons(
	ctx context.Context,
	q domain.SearchQuery,
) ([]models.Salon, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Salon{}).
		Preload("Services", "active = ?", true).
		Where("status <> ?", "Suspended")

	if strings.TrimSpace(q.Search) != "" {
		like := likePattern(q.Search)
		tx = tx.Where(
			"LOWER(salon_name) LIKE ? OR EXISTS (SELECT 1 FROM salon_services ss WHERE ss.salon_id = salons.id AND ss.active AND LOWER(ss.name) LIKE ?)",
			like, like,
		)
	}

	if strings.TrimSpace(q.Service) != "" {
		tx = tx.Where(
			"EXISTS (SELECT 1 FROM salon_services ss WHERE ss.salon_id = salons.id AND ss.active AND LOWER(ss.name) LIKE ?)",
			likePattern(q.Service),
		)
	}

	var out []models.Salon
	if err := tx.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	return out, nil
}

func (r *SalonGormRepository) GetSalon(
	ctx context.Context,
	id string,
) (*models.Salon, error) {

	var s models.Salon
	if err := r.db.WithContext(ctx).
		Preload("Services", "active = ?", true).
		Where("id = ?", id).
		First(&s).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	return &s, nil
}

func (r *SalonGormRepository) SalonStats(
	ctx context.Context,
	salonID string,
	w domain.StatsWindow,
) (*domain.Stats, error) {

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Booking{}).Where("salon_id = ?", salonID)
	}

	var st domain.Stats
	if err := base().Count(&st.TotalBookings).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	if err := base().Where("date = ?", w.Today).Count(&st.TodayBookings).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	if err := base().
		Where("booking_status IN ?", []string{"PENDING", "PENDING_PAYMENT"}).
		Count(&st.PendingRequests).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}

	var sums struct {
		Revenue    float64
		Commission float64
	}
	if err := base().
		Select("COALESCE(SUM(total_price), 0) AS revenue, COALESCE(SUM(commission_amount), 0) AS commission").
		Where("payment_status = ? AND date BETWEEN ? AND ?", "Paid", w.MonthStart, w.MonthEnd).
		Scan(&sums).Error; err != nil {
		return nil, translate(err, "salon_not_found", "Salon not found.")
	}
	st.MonthRevenue = sums.Revenue
	st.MonthCommission = sums.Commission

	return &st, nil
}

func (r *SalonGormRepository) SaveSalonProfile(
	ctx context.Context,
	s *models.Salon,
) error {

	err := r.db.WithContext(ctx).
		Model(&models.Salon{ID: s.ID}).
		Select("salon_name", "owner_name", "email", "address", "image", "latitude", "longitude", "open_time", "close_time").
		Updates(s).Error
	if err != nil {
		return translate(err, "salon_not_found", "Salon not found.")
	}
	return nil
}

// ======================================================
// CATALOG
// ======================================================

func (r *SalonGormRepository) ListServices(
	ctx context.Context,
	salonID string,
	f domain.ServiceFilter,
) ([]models.SalonService, error) {

	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)

	if c := strings.ToLower(strings.TrimSpace(f.Category)); c != "" {
		q = q.Where("LOWER(category) = ?", c)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}
	if strings.TrimSpace(f.Query) != "" {
		like := likePattern(f.Query)
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var out []models.SalonService
	if err := q.Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "service_not_found", "Service not found.")
	}
	return out, nil
}

func (r *SalonGormRepository) GetService(
	ctx context.Context,
	salonID, id string,
) (*models.SalonService, error) {

	var s models.SalonService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&s).Error; err != nil {
		return nil, translate(err, "service_not_found", "Service not found.")
	}
	return &s, nil
}

func (r *SalonGormRepository) CreateService(ctx context.Context, s *models.SalonService) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return translate(err, "service_not_found", "Service not found.")
	}
	return nil
}

func (r *SalonGormRepository) SaveService(ctx context.Context, s *models.SalonService) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return translate(err, "service_not_found", "Service not found.")
	}
	return nil
}

func (r *SalonGormRepository) ServiceCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	var out []domain.CatalogEntry
	err := r.db.WithContext(ctx).
		Table("salon_services ss").
		Select("MIN(ss.name) AS name, MIN(ss.price) AS min_price, COUNT(DISTINCT ss.salon_id) AS salons").
		Joins("JOIN salons s ON s.id = ss.salon_id").
		Where("ss.active AND s.status <> ?", "Suspended").
		Group("LOWER(ss.name)").
		Order("name ASC").
		Scan(&out).Error
	if err != nil {
		return nil, translate(err, "service_not_found", "Service not found.")
	}
	return out, nil
}

// ======================================================
// PARTNER READS
// ======================================================

func (r *SalonGormRepository) ListCustomers(
	ctx context.Context,
	salonID string,
	query string,
) ([]domain.CustomerSummary, error) {

	q := r.db.WithContext(ctx).
		Table("bookings b").
		Select("c.id, c.full_name, c.phone_number, COUNT(b.id) AS bookings, MAX(b.date) AS last_booking_on").
		Joins("JOIN customers c ON c.id = b.customer_id").
		Where("b.salon_id = ?", salonID)

	if strings.TrimSpace(query) != "" {
		like := likePattern(query)
		q = q.Where("LOWER(c.full_name) LIKE ? OR c.phone_number LIKE ?", like, like)
	}

	var out []domain.CustomerSummary
	if err := q.
		Group("c.id, c.full_name, c.phone_number").
		Order("last_booking_on DESC").
		Scan(&out).Error; err != nil {
		return nil, translate(err, "customer_not_found", "Customer not found.")
	}
	return out, nil
}

func (r *SalonGormRepository) ListAuditLogs(
	ctx context.Context,
	salonID string,
	f domain.AuditFilter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("salon_id = ?", salonID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "audit_not_found", "Audit log not found.")
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, translate(err, "audit_not_found", "Audit log not found.")
	}
	return logs, total, nil
}

var _ domain.Repository = (*SalonGormRepository)(nil)
