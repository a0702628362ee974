package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

func UserRoutes(app *fiber.App) {
	user := app.Group("/api/users", middleware.ProtectRoute)

	user.Get("/search", controllers.SearchUsers)
	user.Put("/me", controllers.UpdateProfile)
	user.Get("/:id", controllers.GetUserByID)
}
