package db

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/outlaw-hq/admin-api/internal/config"
	"github.com/outlaw-hq/admin-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	sqlDB, err := sql.Open("pgx", cfg.DBUrl)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.UserInformation{},
		&models.Idea{},
		&models.Form{},
		&models.FormResponse{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// legacy rows predate the status default
	db.Exec(`
        UPDATE bookings
        SET status = 'pending'
        WHERE status IS NULL OR status = ''
    `)

	return db
}
