package dto

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	m "gymbook_backend/internals/features/bookings/booking/model"
)

/* =======================================================
   Request DTOs
   ======================================================= */

type CreateBookingRequest struct {
	StartTime string  `json:"start_time" validate:"required"` // RFC3339
	EndTime   string  `json:"end_time"   validate:"required"` // RFC3339
	Notes     *string `json:"notes,omitempty"        validate:"omitempty,max=500"`
}

type PatchBookingRequest struct {
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Notes     *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	// Satu-satunya transisi status yang sah lewat PATCH adalah pembatalan.
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=CANCELLED"`
}

func (r *CreateBookingRequest) Validate(v *validator.Validate) error {
	if v == nil {
		return nil
	}
	return v.Struct(r)
}

func (r *PatchBookingRequest) Validate(v *validator.Validate) error {
	if v == nil {
		return nil
	}
	return v.Struct(r)
}

// ParseRFC3339 mem-parse timestamp request (RFC3339).
func ParseRFC3339(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s invalid (want RFC3339)", field)
	}
	return t, nil
}

/* =======================================================
   Response DTO
   ======================================================= */

type BookingResponse struct {
	BookingID        uuid.UUID       `json:"booking_id"`
	BookingUserID    uuid.UUID       `json:"booking_user_id"`
	BookingStartTime time.Time       `json:"booking_start_time"`
	BookingEndTime   time.Time       `json:"booking_end_time"`
	BookingStatus    m.BookingStatus `json:"booking_status"`
	BookingNotes     *string         `json:"booking_notes,omitempty"`
	BookingCreatedAt time.Time       `json:"booking_created_at"`
	BookingUpdatedAt time.Time       `json:"booking_updated_at"`
}

func NewBookingResponse(src *m.BookingModel) BookingResponse {
	return BookingResponse{
		BookingID:        src.BookingID,
		BookingUserID:    src.BookingUserID,
		BookingStartTime: src.BookingStartTime,
		BookingEndTime:   src.BookingEndTime,
		BookingStatus:    src.BookingStatus,
		BookingNotes:     src.BookingNotes,
		BookingCreatedAt: src.BookingCreatedAt,
		BookingUpdatedAt: src.BookingUpdatedAt,
	}
}
