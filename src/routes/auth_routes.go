package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/signup", controllers.Signup)
	auth.Post("/login", controllers.Login)
	auth.Get("/me", middleware.ProtectRoute, controllers.GetCurrentUser)
}
