package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"petcare-service/internal/model"
	"petcare-service/pkg/config"
)

// slotIndex enforces the scheduling invariant at the database level:
// at most one Pending/Confirmed appointment per (vet, date-time). The
// conflict check in the scheduling service runs inside a transaction,
// this index is the backstop for anything that bypasses it.
const slotIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS uniq_vet_slot
ON appointments (vet_id, appointment_date)
WHERE status IN ('Pending', 'Confirmed')
`

// Connect opens the PostgreSQL connection and configures the pool.
// The handle is returned to the caller instead of being stored in a
// package global so every consumer receives it explicitly.
func Connect(dbConfig *config.DBConfig) (*gorm.DB, error) {
	pgConfig := postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: gormlogger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

// Migrate runs migrations for all application models and creates the
// partial unique index guarding appointment slots.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Owner{},
		&model.Veterinarian{},
		&model.Pet{},
		&model.Appointment{},
		&model.Vaccination{},
		&model.Medication{},
		&model.Expense{},
	); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	if err := db.Exec(slotIndex).Error; err != nil {
		return fmt.Errorf("failed to create appointment slot index: %w", err)
	}

	return nil
}
