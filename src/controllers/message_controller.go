package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/models"
)

// SendMessage persists a message from the authenticated user and notifies the
// receiver
func SendMessage(c *fiber.Ctx) error {
	var body struct {
		ReceiverId string                  `json:"receiverId"`
		Content    string                  `json:"content"`
		Type       models.MessageType      `json:"type"`
		Metadata   *models.MessageMetadata `json:"metadata"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	receiverID, err := primitive.ObjectIDFromHex(body.ReceiverId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	if body.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Content is required",
		})
	}

	if body.Type == "" {
		body.Type = models.MessageTypeText
	}

	user := c.Locals("user").(models.User)

	newMessage := models.Message{
		Id:         primitive.NewObjectID(),
		SenderId:   user.Id,
		ReceiverId: receiverID,
		Content:    body.Content,
		Type:       body.Type,
		Metadata:   body.Metadata,
		Read:       false,
		Timestamp:  time.Now(),
	}

	if _, err := lib.DB.Collection("messages").InsertOne(c.Context(), newMessage); err != nil {
		lib.Logger.Error("Error creating message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	lib.Dispatch(c.Context(), receiverID, user.Id, models.NotificationTypeMessage, "sent you a message.")

	return c.Status(fiber.StatusCreated).JSON(newMessage)
}

// GetMyMessages returns all messages sent or received by the authenticated
// user, oldest first
func GetMyMessages(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	filter := bson.M{
		"$or": []bson.M{
			{"senderId": user.Id},
			{"receiverId": user.Id},
		},
	}
	opts := options.Find().SetSort(bson.M{"timestamp": 1})

	cursor, err := lib.DB.Collection("messages").Find(c.Context(), filter, opts)
	if err != nil {
		lib.Logger.Error("Error finding messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}
	defer cursor.Close(c.Context())

	messages := make([]models.Message, 0)
	if err := cursor.All(c.Context(), &messages); err != nil {
		lib.Logger.Error("Error decoding messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(messages)
}

// MarkMessagesRead bulk-flips read on every unread message the given buddy
// sent to the authenticated user. Messages in the other direction are untouched.
func MarkMessagesRead(c *fiber.Ctx) error {
	buddyID, err := primitive.ObjectIDFromHex(c.Params("buddyId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	filter := bson.M{
		"senderId":   buddyID,
		"receiverId": user.Id,
		"read":       false,
	}
	update := bson.M{"$set": bson.M{"read": true}}

	if _, err := lib.DB.Collection("messages").UpdateMany(c.Context(), filter, update); err != nil {
		lib.Logger.Error("Error marking messages as read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Messages marked as read"))
}
