package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "gymbook_backend/internals/features/users/user/controller"
)

// UserAdminRoutes — manajemen user (role, kuota mingguan, status aktif).
// Router sudah dibungkus auth + role admin di index.
func UserAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	users := router.Group("/users")
	users.Get("/", ctl.List)
	users.Get("/:id", ctl.GetByID)
	users.Patch("/:id", ctl.Patch)
}
