package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-booking/internal/config"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsProduction() {
		level = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Salon{},
		&models.SalonService{},
		&models.Booking{},
		&models.BookingItem{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(`
		UPDATE salons
		SET status = 'Unverified'
		WHERE status IS NULL OR status = ''
	`).Error; err != nil {
		log.Warn("backfill salon status failed", zap.Error(err))
	}

	if err := db.Exec(`
		UPDATE bookings
		SET scheduled_at = to_timestamp("date" || ' ' || "time", 'YYYY-MM-DD HH12:MI AM')
		WHERE scheduled_at IS NULL
	`).Error; err != nil {
		log.Warn("backfill booking schedule failed", zap.Error(err))
	}

	log.Info("database ready")
	return db, nil
}
