package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	d "gymbook_backend/internals/features/users/user/dto"
	m "gymbook_backend/internals/features/users/user/model"
	helper "gymbook_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, errors.New(name + " is required")
	}
	return uuid.Parse(raw)
}

/* =========================
   List (admin)
   ========================= */

func (ctl *UserController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var rows []m.UserModel
	if err := ctl.DB.
		Order("user_created_at ASC").
		Limit(limit).Offset(offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]d.UserResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.NewUserResponse(&rows[i]))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":   out,
		"limit":  limit,
		"offset": offset,
	})
}

/* =========================
   GetByID (admin)
   ========================= */

func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var row m.UserModel
	if err := ctl.DB.First(&row, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(d.NewUserResponse(&row))
}

/* =========================
   Patch (admin) — role, kuota mingguan, status aktif
   ========================= */

func (ctl *UserController) Patch(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var existing m.UserModel
	if err := ctl.DB.First(&existing, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var req d.PatchUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(ctl.Validate); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyPatch(&existing)

	if err := ctl.DB.Save(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(d.NewUserResponse(&existing))
}
