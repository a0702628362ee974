package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

// ConnectionRoutes sets up routes for sending, accepting, and rejecting buddy
// requests, and for listing the user's connections
func ConnectionRoutes(app *fiber.App) {
	connection := app.Group("/api/connections", middleware.ProtectRoute)

	connection.Post("/invite", controllers.SendInvite)
	connection.Put("/accept/:id", controllers.AcceptInvite)
	connection.Put("/reject/:id", controllers.RejectInvite)
	connection.Get("/mine", controllers.GetMyConnections)
}
