package model

import (
	"time"

	"github.com/google/uuid"
)

/* =======================================================
   Enum status (closed set — soft state transitions only)
   ======================================================= */

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

/* =======================================================
   BookingModel — map ke tabel bookings
   ======================================================= */

type BookingModel struct {
	// PK
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:booking_id"`

	// Owner
	BookingUserID uuid.UUID `json:"booking_user_id" gorm:"type:uuid;not null;index;column:booking_user_id"`

	// Interval (absolut, end > start)
	BookingStartTime time.Time `json:"booking_start_time" gorm:"not null;index;column:booking_start_time"`
	BookingEndTime   time.Time `json:"booking_end_time" gorm:"not null;column:booking_end_time"`

	// Hari kalender dari start_time; dipakai partial unique index
	// (booking_user_id, booking_day) untuk baris non-CANCELLED.
	BookingDay time.Time `json:"booking_day" gorm:"type:date;not null;column:booking_day"`

	BookingStatus BookingStatus `json:"booking_status" gorm:"type:varchar(20);not null;default:'CONFIRMED';index;column:booking_status"`
	BookingNotes  *string       `json:"booking_notes,omitempty" gorm:"type:text;column:booking_notes"`

	BookingCreatedAt time.Time `json:"booking_created_at" gorm:"autoCreateTime;column:booking_created_at"`
	BookingUpdatedAt time.Time `json:"booking_updated_at" gorm:"autoUpdateTime;column:booking_updated_at"`
}

func (BookingModel) TableName() string {
	return "bookings"
}

// SetDay menurunkan booking_day dari start time.
func (b *BookingModel) SetDay() {
	t := b.BookingStartTime
	b.BookingDay = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
