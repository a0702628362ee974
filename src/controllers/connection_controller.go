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

// SendInvite creates a pending connection request from the authenticated user
// to the target user and notifies the recipient
func SendInvite(c *fiber.Ctx) error {
	var body struct {
		TargetUserId string `json:"targetUserId"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid data",
		})
	}

	targetUserID, err := primitive.ObjectIDFromHex(body.TargetUserId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID format",
		})
	}

	user := c.Locals("user").(models.User)

	if user.Id == targetUserID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Cannot invite yourself",
		})
	}

	// At most one connection document may exist per unordered pair, so check
	// both orderings before inserting
	connectionsCollection := lib.DB.Collection("connections")
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": user.Id, "toUserId": targetUserID},
			{"fromUserId": targetUserID, "toUserId": user.Id},
		},
	}

	var existing models.Connection
	err = connectionsCollection.FindOne(c.Context(), filter).Decode(&existing)
	if err == nil {
		// Rejected pairs stay blocked unless re-invites are explicitly enabled
		if !lib.Cfg.AllowReinviteAfterReject || existing.Status != models.ConnectionStatusRejected {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Connection already exists",
			})
		}
		if _, err := connectionsCollection.DeleteOne(c.Context(), bson.M{"_id": existing.Id}); err != nil {
			lib.Logger.Error("Error replacing rejected connection", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Something went wrong",
			})
		}
	} else if err != mongo.ErrNoDocuments {
		lib.Logger.Error("Error checking existing connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	newConnection := models.Connection{
		Id:         primitive.NewObjectID(),
		FromUserId: user.Id,
		ToUserId:   targetUserID,
		Status:     models.ConnectionStatusPending,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if _, err := connectionsCollection.InsertOne(c.Context(), newConnection); err != nil {
		lib.Logger.Error("Error creating connection request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	lib.Dispatch(c.Context(), targetUserID, user.Id, models.NotificationTypeInvitation, "sent you a buddy request.")

	return c.Status(fiber.StatusCreated).JSON(newConnection)
}

// AcceptInvite accepts a pending connection request. Only the recipient may
// accept, and terminal states are never left.
func AcceptInvite(c *fiber.Ctx) error {
	connectionID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid connection ID format",
		})
	}

	user := c.Locals("user").(models.User)

	connectionsCollection := lib.DB.Collection("connections")
	var connection models.Connection
	err = connectionsCollection.FindOne(c.Context(), bson.M{"_id": connectionID}).Decode(&connection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Connection not found",
			})
		}
		lib.Logger.Error("Error finding connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	// Only the receiver can accept
	if connection.ToUserId != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized",
		})
	}

	if connection.Status != models.ConnectionStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "This request has already been processed",
		})
	}

	update := bson.M{
		"$set": bson.M{
			"status":    models.ConnectionStatusAccepted,
			"updatedAt": time.Now(),
		},
	}
	if _, err := connectionsCollection.UpdateOne(c.Context(), bson.M{"_id": connectionID}, update); err != nil {
		lib.Logger.Error("Error accepting connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	lib.Dispatch(c.Context(), connection.FromUserId, user.Id, models.NotificationTypeAcceptance, "accepted your buddy request!")

	connection.Status = models.ConnectionStatusAccepted
	return c.Status(fiber.StatusOK).JSON(connection)
}

// RejectInvite rejects a pending connection request. No notification is
// created for the sender.
func RejectInvite(c *fiber.Ctx) error {
	connectionID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid connection ID format",
		})
	}

	user := c.Locals("user").(models.User)

	connectionsCollection := lib.DB.Collection("connections")
	var connection models.Connection
	err = connectionsCollection.FindOne(c.Context(), bson.M{"_id": connectionID}).Decode(&connection)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Connection not found",
			})
		}
		lib.Logger.Error("Error finding connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	if connection.ToUserId != user.Id {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not authorized",
		})
	}

	if connection.Status != models.ConnectionStatusPending {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "This request has already been processed",
		})
	}

	update := bson.M{
		"$set": bson.M{
			"status":    models.ConnectionStatusRejected,
			"updatedAt": time.Now(),
		},
	}
	if _, err := connectionsCollection.UpdateOne(c.Context(), bson.M{"_id": connectionID}, update); err != nil {
		lib.Logger.Error("Error rejecting connection", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	connection.Status = models.ConnectionStatusRejected
	return c.Status(fiber.StatusOK).JSON(connection)
}

// GetMyConnections returns every connection where the authenticated user is
// either party, with both parties populated as profile snapshots
func GetMyConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	connectionsCollection := lib.DB.Collection("connections")
	filter := bson.M{
		"$or": []bson.M{
			{"fromUserId": user.Id},
			{"toUserId": user.Id},
		},
	}

	cursor, err := connectionsCollection.Find(c.Context(), filter)
	if err != nil {
		lib.Logger.Error("Error finding connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}
	defer cursor.Close(c.Context())

	var connections []models.Connection
	if err := cursor.All(c.Context(), &connections); err != nil {
		lib.Logger.Error("Error decoding connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Something went wrong",
		})
	}

	response := make([]models.ConnectionDto, 0, len(connections))

	usersCollection := lib.DB.Collection("users")
	projection := options.FindOne().SetProjection(bson.M{"password": 0})
	for _, conn := range connections {
		var fromUser, toUser models.User

		if err := usersCollection.FindOne(c.Context(), bson.M{"_id": conn.FromUserId}, projection).Decode(&fromUser); err != nil && err != mongo.ErrNoDocuments {
			lib.Logger.Error("Error finding connection sender", zap.Error(err))
			continue
		}
		if err := usersCollection.FindOne(c.Context(), bson.M{"_id": conn.ToUserId}, projection).Decode(&toUser); err != nil && err != mongo.ErrNoDocuments {
			lib.Logger.Error("Error finding connection recipient", zap.Error(err))
			continue
		}

		response = append(response, models.ConnectionDto{
			ID:        conn.Id,
			FromUser:  fromUser,
			ToUser:    toUser,
			Status:    conn.Status,
			CreatedAt: conn.CreatedAt,
			UpdatedAt: conn.UpdatedAt,
		})
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
