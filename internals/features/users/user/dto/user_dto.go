package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	m "gymbook_backend/internals/features/users/user/model"
)

/* =========================
   Request DTOs
   ========================= */

// PatchUserRequest — semua optional, hanya field non-nil yang di-apply (admin only).
type PatchUserRequest struct {
	UserName               *string `json:"user_name,omitempty" validate:"omitempty,min=3,max=50"`
	UserRole               *string `json:"user_role,omitempty" validate:"omitempty,oneof=user admin"`
	UserWeeklyBookingLimit *int    `json:"user_weekly_booking_limit,omitempty" validate:"omitempty,min=1,max=10"`
	UserIsActive           *bool   `json:"user_is_active,omitempty"`
}

func (p *PatchUserRequest) Validate(v *validator.Validate) error {
	if v == nil {
		return nil
	}
	return v.Struct(p)
}

func (p *PatchUserRequest) ApplyPatch(dst *m.UserModel) {
	if p.UserName != nil {
		dst.UserName = *p.UserName
	}
	if p.UserRole != nil {
		dst.UserRole = *p.UserRole
	}
	if p.UserWeeklyBookingLimit != nil {
		dst.UserWeeklyBookingLimit = *p.UserWeeklyBookingLimit
	}
	if p.UserIsActive != nil {
		dst.UserIsActive = *p.UserIsActive
	}
}

/* =========================
   Response DTO
   ========================= */

type UserResponse struct {
	UserID                 uuid.UUID `json:"user_id"`
	UserName               string    `json:"user_name"`
	UserEmail              string    `json:"user_email"`
	UserRole               string    `json:"user_role"`
	UserWeeklyBookingLimit int       `json:"user_weekly_booking_limit"`
	UserIsActive           bool      `json:"user_is_active"`
	UserCreatedAt          time.Time `json:"user_created_at"`
	UserUpdatedAt          time.Time `json:"user_updated_at"`
}

func NewUserResponse(src *m.UserModel) UserResponse {
	return UserResponse{
		UserID:                 src.UserID,
		UserName:               src.UserName,
		UserEmail:              src.UserEmail,
		UserRole:               src.UserRole,
		UserWeeklyBookingLimit: src.UserWeeklyBookingLimit,
		UserIsActive:           src.UserIsActive,
		UserCreatedAt:          src.UserCreatedAt,
		UserUpdatedAt:          src.UserUpdatedAt,
	}
}
