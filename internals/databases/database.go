package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"gymbook_backend/internals/configs"
	bookingModel "gymbook_backend/internals/features/bookings/booking/model"
	userModel "gymbook_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[DB] Connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=gymbook&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[DB] connect failed: %v", err)
	}
	DB = db
	log.Println("[DB] connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate + index tambahan yang tidak bisa
// diekspresikan lewat tag GORM.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&bookingModel.BookingModel{},
	); err != nil {
		log.Fatalf("[DB] migrate failed: %v", err)
	}

	// Satu booking aktif per user per hari kalender. Partial unique index
	// menutup race dua request concurrent untuk (user, day) yang sama.
	if err := DB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uq_bookings_user_day_active
		ON bookings (booking_user_id, booking_day)
		WHERE booking_status <> 'CANCELLED'
	`).Error; err != nil {
		log.Fatalf("[DB] index migrate failed: %v", err)
	}
	log.Println("[DB] migration done.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
