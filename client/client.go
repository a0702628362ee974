// Package client is the Go counterpart of the web client's data layer: a thin
// bearer-token HTTP client plus an in-memory mirror of the server state with
// the derived views the UI renders.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/models"
)

// Notification is the populated shape the server returns from
// GET /api/notifications/mine
type Notification struct {
	ID        primitive.ObjectID      `json:"id"`
	UserId    primitive.ObjectID      `json:"userId"`
	FromUser  *models.UserDto         `json:"fromUserId,omitempty"`
	Type      models.NotificationType `json:"type"`
	Content   string                  `json:"content"`
	Read      bool                    `json:"read"`
	Timestamp time.Time               `json:"timestamp"`
}

// AuthResponse is returned by signup and login
type AuthResponse struct {
	Token  string      `json:"token"`
	Result models.User `json:"result"`
}

// Client issues authenticated request/response calls against the REST API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// SetToken sets the bearer credential carried on every subsequent request
func (c *Client) SetToken(token string) {
	c.token = token
}

// request performs a JSON round trip. Non-2xx responses surface as an error
// carrying the server's message field.
func (c *Client) request(method, endpoint string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("API request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			c.logger.Error("API error", zap.String("endpoint", endpoint), zap.String("message", errBody.Message))
			return fmt.Errorf("%s", errBody.Message)
		}
		return fmt.Errorf("something went wrong (status %d)", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// Signup registers a new account and stores the returned token
func (c *Client) Signup(name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.request(http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned token
func (c *Client) Login(email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.request(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me fetches the authenticated user's profile
func (c *Client) Me() (*models.User, error) {
	var user models.User
	if err := c.request(http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SearchUsers queries the user directory
func (c *Client) SearchUsers(query, subject string) ([]models.User, error) {
	endpoint := fmt.Sprintf("/api/users/search?query=%s&subject=%s", query, subject)
	var users []models.User
	if err := c.request(http.MethodGet, endpoint, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile saves profile changes and returns the updated user
func (c *Client) UpdateProfile(fields map[string]interface{}) (*models.User, error) {
	var user models.User
	if err := c.request(http.MethodPut, "/api/users/me", fields, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Invite sends a buddy request to the target user
func (c *Client) Invite(targetUserID primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	err := c.request(http.MethodPost, "/api/connections/invite", map[string]string{
		"targetUserId": targetUserID.Hex(),
	}, &conn)
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// Accept accepts a pending buddy request
func (c *Client) Accept(connectionID primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	if err := c.request(http.MethodPut, "/api/connections/accept/"+connectionID.Hex(), nil, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// Reject rejects a pending buddy request
func (c *Client) Reject(connectionID primitive.ObjectID) (*models.Connection, error) {
	var conn models.Connection
	if err := c.request(http.MethodPut, "/api/connections/reject/"+connectionID.Hex(), nil, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}

// MyConnections lists the user's connections with both parties populated
func (c *Client) MyConnections() ([]models.ConnectionDto, error) {
	var conns []models.ConnectionDto
	if err := c.request(http.MethodGet, "/api/connections/mine", nil, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}

// SendMessage sends a direct message to a buddy
func (c *Client) SendMessage(receiverID primitive.ObjectID, content string, msgType models.MessageType, metadata *models.MessageMetadata) (*models.Message, error) {
	var msg models.Message
	err := c.request(http.MethodPost, "/api/messages", map[string]interface{}{
		"receiverId": receiverID.Hex(),
		"content":    content,
		"type":       msgType,
		"metadata":   metadata,
	}, &msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MyMessages lists all messages sent or received by the user, oldest first
func (c *Client) MyMessages() ([]models.Message, error) {
	var msgs []models.Message
	if err := c.request(http.MethodGet, "/api/messages/mine", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkMessagesRead bulk-acks every unread message from the given buddy
func (c *Client) MarkMessagesRead(buddyID primitive.ObjectID) error {
	return c.request(http.MethodPut, "/api/messages/read/"+buddyID.Hex(), nil, nil)
}

// MyNotifications lists the user's notifications, newest first
func (c *Client) MyNotifications() ([]Notification, error) {
	var notifs []Notification
	if err := c.request(http.MethodGet, "/api/notifications/mine", nil, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkNotificationRead flips a single notification to read
func (c *Client) MarkNotificationRead(notificationID primitive.ObjectID) error {
	return c.request(http.MethodPut, "/api/notifications/"+notificationID.Hex()+"/read", nil, nil)
}

// ClearNotifications deletes every notification owned by the user
func (c *Client) ClearNotifications() error {
	return c.request(http.MethodDelete, "/api/notifications/clear", nil, nil)
}
