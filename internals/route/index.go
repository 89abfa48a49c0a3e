package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"gymbook_backend/internals/constants"
	"gymbook_backend/internals/features/bookings/booking/scheduler"
	authMiddleware "gymbook_backend/internals/middlewares/auth"
	routeDetails "gymbook_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, sweeper *scheduler.Sweeper) {
	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(db))
	routeDetails.BookingRoutes(private, db, sweeper)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.RoleAdmin),
	)
	routeDetails.UserAdminRoutes(admin, db)
}
