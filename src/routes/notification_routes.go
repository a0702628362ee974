package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

func NotificationRoutes(app *fiber.App) {
	notification := app.Group("/api/notifications", middleware.ProtectRoute)

	notification.Get("/mine", controllers.GetMyNotifications)
	notification.Put("/:id/read", controllers.MarkNotificationAsRead)
	notification.Delete("/clear", controllers.ClearNotifications)
}
