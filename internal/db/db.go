package db

import (
	"log"
	"time"

	"github.com/healio-platform/healio-api/internal/config"
	"github.com/healio-platform/healio-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.AvailabilityWindow{},
		&models.Appointment{},
		&models.MoodEntry{},
		&models.JournalEntry{},
		&models.Notification{},
		&models.Settings{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// At most one live appointment per (therapist, date, time). Cancelled
	// rows stay behind for history, so the index is partial. The insert
	// itself is the conflict check of last resort: two concurrent bookings
	// cannot both commit.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_booked_slot
        ON appointments (therapist_id, date, time)
        WHERE status <> 'cancelled'
    `)

	return db
}
