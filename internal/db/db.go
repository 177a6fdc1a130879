package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/afritrim-api/internal/config"
	"github.com/BruksfildServices01/afritrim-api/internal/models"
)

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
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

	return db, nil
}

// Migrate creates or updates every table the API writes to.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Admin{},
		&models.Barbershop{},
		&models.Barber{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.Review{},
		&models.Invoice{},
		&models.Sale{},
		&models.Payment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Backstop for the booking check: one live appointment per barber and
	// start time, whatever the isolation level.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointment_barber_slot
		 ON appointments (barber_id, appointment_time)
		 WHERE status <> 'Cancelled'`,
	).Error; err != nil {
		return fmt.Errorf("migrate appointment slot index: %w", err)
	}
	return nil
}
