package controllers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lmsbuddy/backend/src/models"
)

func TestSendMessageRejectsInvalidReceiverID(t *testing.T) {
	user := models.User{Id: primitive.NewObjectID()}
	app := testApp(user, fiber.MethodPost, "/api/messages", SendMessage)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/messages", `{"receiverId":"bogus","content":"hi"}`))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSendMessageRequiresContent(t *testing.T) {
	user := models.User{Id: primitive.NewObjectID()}
	app := testApp(user, fiber.MethodPost, "/api/messages", SendMessage)

	body := `{"receiverId":"` + primitive.NewObjectID().Hex() + `","content":""}`
	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/messages", body))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkMessagesReadRejectsInvalidBuddyID(t *testing.T) {
	user := models.User{Id: primitive.NewObjectID()}
	app := testApp(user, fiber.MethodPut, "/api/messages/read/:buddyId", MarkMessagesRead)

	resp, err := app.Test(jsonRequest(fiber.MethodPut, "/api/messages/read/bogus", ""))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkNotificationAsReadRejectsInvalidID(t *testing.T) {
	user := models.User{Id: primitive.NewObjectID()}
	app := testApp(user, fiber.MethodPut, "/api/notifications/:id/read", MarkNotificationAsRead)

	resp, err := app.Test(jsonRequest(fiber.MethodPut, "/api/notifications/bogus/read", ""))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
