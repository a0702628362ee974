package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/models"
)

// GetMyNotifications returns all notifications for the authenticated user,
// newest first, with the triggering user populated for display
func GetMyNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	filter := bson.M{"userId": user.Id}
	opts := options.Find().SetSort(bson.M{"timestamp": -1})

	cursor, err := lib.DB.Collection("notifications").Find(c.Context(), filter, opts)
	if err != nil {
		lib.Logger.Error("Error finding notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}
	defer cursor.Close(c.Context())

	var notifications []models.Notification
	if err := cursor.All(c.Context(), &notifications); err != nil {
		lib.Logger.Error("Error decoding notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	type NotificationResponse struct {
		ID        primitive.ObjectID      `json:"id"`
		UserId    primitive.ObjectID      `json:"userId"`
		FromUser  *models.UserDto         `json:"fromUserId,omitempty"`
		Type      models.NotificationType `json:"type"`
		Content   string                  `json:"content"`
		Read      bool                    `json:"read"`
		Timestamp time.Time               `json:"timestamp"`
	}

	response := make([]NotificationResponse, 0, len(notifications))

	usersCollection := lib.DB.Collection("users")
	for _, notification := range notifications {
		respItem := NotificationResponse{
			ID:        notification.Id,
			UserId:    notification.UserId,
			Type:      notification.Type,
			Content:   notification.Content,
			Read:      notification.Read,
			Timestamp: notification.Timestamp,
		}

		var fromUser models.UserDto
		err := usersCollection.FindOne(
			c.Context(),
			bson.M{"_id": notification.FromUserId},
			options.FindOne().SetProjection(bson.M{
				"name":   1,
				"avatar": 1,
			}),
		).Decode(&fromUser)

		if err == nil {
			respItem.FromUser = &fromUser
		} else if err != mongo.ErrNoDocuments {
			lib.Logger.Error("Error finding notification sender", zap.Error(err))
		}

		response = append(response, respItem)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

// MarkNotificationAsRead marks a notification as read. Only the recipient may
// flip it; the filter scopes the update to the authenticated user.
func MarkNotificationAsRead(c *fiber.Ctx) error {
	notificationID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid notification ID format",
		})
	}

	user := c.Locals("user").(models.User)

	filter := bson.M{
		"_id":    notificationID,
		"userId": user.Id,
	}
	update := bson.M{"$set": bson.M{"read": true}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedNotification models.Notification
	err = lib.DB.Collection("notifications").FindOneAndUpdate(c.Context(), filter, update, opts).Decode(&updatedNotification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Notification not found or you don't have permission to update it",
			})
		}
		lib.Logger.Error("Error marking notification as read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(updatedNotification)
}

// ClearNotifications deletes every notification owned by the authenticated user
func ClearNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	_, err := lib.DB.Collection("notifications").DeleteMany(c.Context(), bson.M{"userId": user.Id})
	if err != nil {
		lib.Logger.Error("Error clearing notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("Notifications cleared"))
}
