package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/middleware"
)

func AIRoutes(app *fiber.App) {
	ai := app.Group("/api/ai", middleware.ProtectRoute)

	ai.Post("/summary", controllers.SummarizeChat)
	ai.Post("/quiz", controllers.GenerateQuiz)
	ai.Get("/suggestions", controllers.SuggestBuddies)
	ai.Post("/risk", controllers.AssessRisk)
}
