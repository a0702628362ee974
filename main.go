package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/controllers"
	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/routes"
	"github.com/lmsbuddy/backend/src/services"
)

func main() {
	_ = godotenv.Load()

	cfg := lib.LoadConfig()

	logger, err := lib.InitLogger(cfg.Env)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	lib.ConnectDB()

	if err := lib.EnsureIndexes(context.Background()); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	controllers.AI = services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Register routes
	routes.AuthRoutes(app)
	routes.UserRoutes(app)
	routes.ConnectionRoutes(app)
	routes.MessageRoutes(app)
	routes.NotificationRoutes(app)
	routes.AIRoutes(app)

	// Root check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("LMS Buddy Server is Running!")
	})

	logger.Info("Server is running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
