package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/models"
	"github.com/lmsbuddy/backend/src/services"
)

// AI is the generative-AI collaborator, set in main
var AI services.AIAssistant

// SummarizeChat returns an AI summary of the submitted study discussion
func SummarizeChat(c *fiber.Ctx) error {
	var body struct {
		Messages []string `json:"messages"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	summary, err := AI.Summarize(c.Context(), body.Messages)
	if err != nil {
		lib.Logger.Error("Error generating summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate summary",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"summary": summary,
	})
}

// GenerateQuiz returns an AI-generated MCQ quiz for a subject
func GenerateQuiz(c *fiber.Ctx) error {
	var body struct {
		Subject    string `json:"subject"`
		Complexity string `json:"complexity"`
		Count      int    `json:"count"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	if body.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Subject is required",
		})
	}
	if body.Complexity == "" {
		body.Complexity = "medium"
	}
	if body.Count <= 0 {
		body.Count = 5
	}

	quiz, err := AI.GenerateQuiz(c.Context(), body.Subject, body.Complexity, body.Count)
	if err != nil {
		lib.Logger.Error("Error generating quiz", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate quiz",
		})
	}

	return c.Status(fiber.StatusOK).JSON(quiz)
}

// SuggestBuddies recommends study partners for the authenticated user based
// on the full user directory. Failures degrade to an empty list.
func SuggestBuddies(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	cursor, err := lib.DB.Collection("users").Find(
		c.Context(),
		bson.M{},
		options.Find().SetProjection(bson.M{"password": 0}),
	)
	if err != nil {
		lib.Logger.Error("Error loading user directory", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}
	defer cursor.Close(c.Context())

	var directory []models.User
	if err := cursor.All(c.Context(), &directory); err != nil {
		lib.Logger.Error("Error decoding user directory", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	suggestions, err := AI.SuggestBuddies(c.Context(), user, directory)
	if err != nil {
		lib.Logger.Error("Error generating buddy suggestions", zap.Error(err))
		suggestions = []services.BuddySuggestion{}
	}

	return c.Status(fiber.StatusOK).JSON(suggestions)
}

// AssessRisk runs the academic risk predictor over submitted performance data
func AssessRisk(c *fiber.Ctx) error {
	var body services.RiskInput

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	if body.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name is required",
		})
	}

	assessment, err := AI.AssessRisk(c.Context(), body)
	if err != nil {
		lib.Logger.Error("Error assessing risk", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to assess risk",
		})
	}

	return c.Status(fiber.StatusOK).JSON(assessment)
}
