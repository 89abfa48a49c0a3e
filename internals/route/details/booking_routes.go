package details

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymbook_backend/internals/configs"
	"gymbook_backend/internals/constants"
	bookingController "gymbook_backend/internals/features/bookings/booking/controller"
	"gymbook_backend/internals/features/bookings/booking/repository"
	"gymbook_backend/internals/features/bookings/booking/scheduler"
	"gymbook_backend/internals/features/bookings/booking/service"
	authMiddleware "gymbook_backend/internals/middlewares/auth"
)

// BookingRoutes — seluruh permukaan booking. Router sudah dibungkus auth.
func BookingRoutes(router fiber.Router, db *gorm.DB, sweeper *scheduler.Sweeper) {
	repo := repository.NewBookingRepository(db)
	svc := service.NewAdmissionService(
		repo, repo,
		time.Duration(configs.MinNoticeHours())*time.Hour,
		configs.HorizonDays(),
	)
	ctl := bookingController.NewBookingController(svc, repo, sweeper)

	adminOnly := authMiddleware.OnlyRoles(
		constants.RoleErrorAdmin("booking administration"), constants.RoleAdmin)

	bookings := router.Group("/bookings")
	bookings.Post("/", ctl.Create)
	bookings.Get("/", ctl.List)

	// Route statis sebelum route berparameter
	bookings.Post("/mark-completed", adminOnly, ctl.MarkCompleted)
	bookings.Delete("/user/:userId", ctl.CancelAllForUser)

	bookings.Get("/:id", ctl.GetByID)
	bookings.Patch("/:id", ctl.Patch)
	bookings.Delete("/:id", ctl.Cancel)
}
