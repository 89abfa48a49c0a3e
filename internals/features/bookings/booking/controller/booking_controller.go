package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	d "gymbook_backend/internals/features/bookings/booking/dto"
	m "gymbook_backend/internals/features/bookings/booking/model"
	"gymbook_backend/internals/features/bookings/booking/repository"
	"gymbook_backend/internals/features/bookings/booking/scheduler"
	"gymbook_backend/internals/features/bookings/booking/service"
	helper "gymbook_backend/internals/helpers"
)

/* =========================
   Controller & Constructor
   ========================= */

type BookingController struct {
	Service  *service.AdmissionService
	Repo     *repository.BookingRepository
	Sweeper  *scheduler.Sweeper
	Validate *validator.Validate
}

func NewBookingController(svc *service.AdmissionService, repo *repository.BookingRepository, sweeper *scheduler.Sweeper) *BookingController {
	return &BookingController{
		Service:  svc,
		Repo:     repo,
		Sweeper:  sweeper,
		Validate: validator.New(),
	}
}

// writeAdmissionError memetakan typed error ke HTTP:
// validation → 400, forbidden → 403, not_found → 404, conflict → 409.
func writeAdmissionError(c *fiber.Ctx, err error) error {
	switch service.KindOf(err) {
	case service.ErrKindValidation:
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	case service.ErrKindForbidden:
		return helper.Error(c, fiber.StatusForbidden, err.Error())
	case service.ErrKindNotFound:
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case service.ErrKindConflict:
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}
	return helper.Error(c, fiber.StatusInternalServerError, err.Error())
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Params(name)))
}

/* =========================
   Create
   ========================= */

func (ctl *BookingController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req d.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(ctl.Validate); err != nil {
		return helper.ValidationError(c, err)
	}

	start, err := d.ParseRFC3339("start_time", req.StartTime)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	end, err := d.ParseRFC3339("end_time", req.EndTime)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	b, err := ctl.Service.Create(c.UserContext(), userID, start, end, req.Notes)
	if err != nil {
		return writeAdmissionError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Booking created", d.NewBookingResponse(b))
}

/* =========================
   List & GetByID
   ========================= */

func (ctl *BookingController) List(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Non-admin hanya boleh melihat booking miliknya sendiri.
	target := requesterID
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "user_id invalid")
		}
		if id != requesterID && !helper.IsAdmin(c) {
			return helper.Error(c, fiber.StatusForbidden, "You may only list your own bookings")
		}
		target = id
	}

	filter := repository.ListFilter{
		UserID: &target,
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st := m.BookingStatus(strings.ToUpper(raw))
		switch st {
		case m.BookingConfirmed, m.BookingCancelled, m.BookingCompleted:
			filter.Status = &st
		default:
			return helper.Error(c, fiber.StatusBadRequest, "status invalid")
		}
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		t, err := d.ParseRFC3339("from", raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		filter.From = &t
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		t, err := d.ParseRFC3339("to", raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		filter.To = &t
	}

	rows, err := ctl.Repo.List(c.UserContext(), filter)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	out := make([]d.BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, d.NewBookingResponse(&rows[i]))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":   out,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (ctl *BookingController) GetByID(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id invalid")
	}

	b, err := ctl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	if b == nil {
		return helper.Error(c, fiber.StatusNotFound, "Booking not found")
	}
	if b.BookingUserID != requesterID && !helper.IsAdmin(c) {
		return helper.Error(c, fiber.StatusForbidden, "You may only view your own bookings")
	}

	return c.Status(fiber.StatusOK).JSON(d.NewBookingResponse(b))
}

/* =========================
   Patch — reschedule / notes / cancel via status
   ========================= */

func (ctl *BookingController) Patch(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id invalid")
	}

	var req d.PatchBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err := req.Validate(ctl.Validate); err != nil {
		return helper.ValidationError(c, err)
	}

	// status: CANCELLED → jalur pembatalan
	if req.Status != nil {
		b, err := ctl.Service.Cancel(c.UserContext(), id, requesterID)
		if err != nil {
			return writeAdmissionError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(d.NewBookingResponse(b))
	}

	patch := service.UpdatePatch{Notes: req.Notes}
	if req.StartTime != nil {
		t, err := d.ParseRFC3339("start_time", *req.StartTime)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		patch.Start = &t
	}
	if req.EndTime != nil {
		t, err := d.ParseRFC3339("end_time", *req.EndTime)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		patch.End = &t
	}

	b, err := ctl.Service.Update(c.UserContext(), id, requesterID, patch)
	if err != nil {
		return writeAdmissionError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(d.NewBookingResponse(b))
}

/* =========================
   Cancel (soft delete)
   ========================= */

func (ctl *BookingController) Cancel(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id invalid")
	}

	b, err := ctl.Service.Cancel(c.UserContext(), id, requesterID)
	if err != nil {
		return writeAdmissionError(c, err)
	}
	return helper.Success(c, "Booking cancelled", d.NewBookingResponse(b))
}

/* =========================
   CancelAllForUser
   ========================= */

func (ctl *BookingController) CancelAllForUser(c *fiber.Ctx) error {
	requesterID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "userId invalid")
	}

	n, err := ctl.Service.CancelAllForUser(c.UserContext(), userID, requesterID)
	if err != nil {
		return writeAdmissionError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"deleted_count": n})
}

/* =========================
   MarkCompleted — paksa satu pass sweeper
   ========================= */

func (ctl *BookingController) MarkCompleted(c *fiber.Ctx) error {
	n, err := ctl.Sweeper.RunOnce(c.UserContext())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"completed_count": n})
}
