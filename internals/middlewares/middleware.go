package middlewares

import "github.com/gofiber/fiber/v2"

// SetupMiddlewares memasang middleware dasar (urutan penting:
// recovery paling luar, lalu CORS, lalu rate limiter global).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
