package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

func MessageRoutes(app *fiber.App) {
	message := app.Group("/api/messages", middleware.ProtectRoute)

	message.Post("/", controllers.SendMessage)
	message.Get("/mine", controllers.GetMyMessages)
	message.Put("/read/:buddyId", controllers.MarkMessagesRead)
}
