package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users di database.
type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserName     string    `gorm:"size:50;not null;column:user_name" json:"user_name"`
	UserEmail    string    `gorm:"size:255;unique;not null;column:user_email" json:"user_email"`
	UserPassword string    `gorm:"not null;column:user_password" json:"-"`

	// Role menentukan aturan validasi mana yang berlaku (admin bypass cutoff dll).
	UserRole string `gorm:"type:varchar(20);not null;default:'user';column:user_role" json:"user_role"`

	// Kuota booking per minggu Senin–Minggu (kebijakan, rentang 1–10).
	UserWeeklyBookingLimit int `gorm:"not null;default:3;column:user_weekly_booking_limit" json:"user_weekly_booking_limit"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time `gorm:"autoCreateTime;column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"autoUpdateTime;column:user_updated_at" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
