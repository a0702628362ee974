package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/lib"
	"github.com/lmsbuddy/backend/src/middleware"
	"github.com/lmsbuddy/backend/src/models"
)

// Runs the full buddy-request flow against a real MongoDB. Set MONGO_TEST_URI
// to enable, e.g. MONGO_TEST_URI=mongodb://localhost:27017
func TestBuddyRequestFlow(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	dbName := fmt.Sprintf("lms-buddy-test-%d", time.Now().UnixNano())
	lib.DB = client.Database(dbName)
	defer lib.DB.Drop(ctx)

	lib.Logger = zap.NewNop()
	lib.Cfg = &lib.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}

	assert.NoError(t, lib.EnsureIndexes(ctx))

	app := fiber.New()
	protected := app.Group("/api", middleware.ProtectRoute)
	protected.Post("/connections/invite", SendInvite)
	protected.Put("/connections/accept/:id", AcceptInvite)
	protected.Put("/connections/reject/:id", RejectInvite)
	protected.Get("/connections/mine", GetMyConnections)
	protected.Post("/messages", SendMessage)
	protected.Get("/messages/mine", GetMyMessages)
	protected.Put("/messages/read/:buddyId", MarkMessagesRead)
	protected.Get("/notifications/mine", GetMyNotifications)
	protected.Delete("/notifications/clear", ClearNotifications)

	alice := seedUser(t, ctx, "Alice", "alice@example.com")
	bob := seedUser(t, ctx, "Bob", "bob@example.com")

	aliceToken, _ := lib.GenerateJWT(alice)
	bobToken, _ := lib.GenerateJWT(bob)

	do := func(method, path, token, body string) (*http.Response, map[string]interface{}) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, 10000)
		assert.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		var decoded map[string]interface{}
		json.Unmarshal(data, &decoded)
		return resp, decoded
	}

	doList := func(method, path, token string) (*http.Response, []map[string]interface{}) {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, 10000)
		assert.NoError(t, err)
		data, _ := io.ReadAll(resp.Body)
		var decoded []map[string]interface{}
		json.Unmarshal(data, &decoded)
		return resp, decoded
	}

	// alice invites bob
	resp, conn := do(fiber.MethodPost, "/api/connections/invite", aliceToken,
		`{"targetUserId":"`+bob.Hex()+`"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", conn["status"])
	connID := conn["id"].(string)

	// a second invite in either direction conflicts
	resp, _ = do(fiber.MethodPost, "/api/connections/invite", aliceToken,
		`{"targetUserId":"`+bob.Hex()+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp, _ = do(fiber.MethodPost, "/api/connections/invite", bobToken,
		`{"targetUserId":"`+alice.Hex()+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// only the recipient may accept
	resp, _ = do(fiber.MethodPut, "/api/connections/accept/"+connID, aliceToken, "")
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// bob accepts; terminal thereafter
	resp, conn = do(fiber.MethodPut, "/api/connections/accept/"+connID, bobToken, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "accepted", conn["status"])

	resp, _ = do(fiber.MethodPut, "/api/connections/reject/"+connID, bobToken, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// acceptance notification lands in alice's list
	resp, notifs := doList(fiber.MethodGet, "/api/notifications/mine", aliceToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, notifs, 1)
	assert.Equal(t, "acceptance", notifs[0]["type"])

	// alice messages bob
	resp, msg := do(fiber.MethodPost, "/api/messages", aliceToken,
		`{"receiverId":"`+bob.Hex()+`","content":"hello","type":"text"}`)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, false, msg["read"])

	resp, bobMsgs := doList(fiber.MethodGet, "/api/messages/mine", bobToken)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, bobMsgs, 1)
	assert.Equal(t, "hello", bobMsgs[0]["content"])
	assert.Equal(t, false, bobMsgs[0]["read"])

	// bob marks alice's messages read
	resp, _ = do(fiber.MethodPut, "/api/messages/read/"+alice.Hex(), bobToken, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, bobMsgs = doList(fiber.MethodGet, "/api/messages/mine", bobToken)
	assert.Equal(t, true, bobMsgs[0]["read"])

	// alice clears her notifications; bob's are untouched
	resp, _ = do(fiber.MethodDelete, "/api/notifications/clear", aliceToken, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, aliceNotifs := doList(fiber.MethodGet, "/api/notifications/mine", aliceToken)
	assert.Empty(t, aliceNotifs)

	_, bobNotifs := doList(fiber.MethodGet, "/api/notifications/mine", bobToken)
	assert.NotEmpty(t, bobNotifs) // invitation + message notifications
}

func seedUser(t *testing.T, ctx context.Context, name, email string) primitive.ObjectID {
	t.Helper()
	user := models.User{
		Id:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      models.UserRoleStudent,
		CreatedAt: time.Now(),
	}
	_, err := lib.DB.Collection("users").InsertOne(ctx, user)
	assert.NoError(t, err)
	return user.Id
}
