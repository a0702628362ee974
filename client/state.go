package client

import (
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/models"
)

// State is the denormalized in-memory mirror of the server's view of the
// current user. It is refreshed by full re-fetch, not incremental sync, so it
// is eventually stale between refreshes.
type State struct {
	mu sync.RWMutex

	client *Client
	logger *zap.Logger

	CurrentUser   models.User
	Connections   []models.ConnectionDto
	Messages      []models.Message
	Notifications []Notification
	MutedBuddies  []primitive.ObjectID

	// client-local entities, never persisted
	StudyRooms   []StudyRoom
	RoomMessages []RoomMessage
	Assignments  []Assignment
}

func NewState(c *Client, logger *zap.Logger) *State {
	return &State{
		client: c,
		logger: logger,
	}
}

// Refresh issues the three independent fetches and replaces the mirror.
// Failures are logged and swallowed, leaving the previous (possibly stale)
// slice in place.
func (s *State) Refresh() {
	connections, err := s.client.MyConnections()
	messages, err2 := s.client.MyMessages()
	notifications, err3 := s.client.MyNotifications()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Error("Failed to fetch connections", zap.Error(err))
	} else {
		s.Connections = connections
	}
	if err2 != nil {
		s.logger.Error("Failed to fetch messages", zap.Error(err2))
	} else {
		s.Messages = messages
	}
	if err3 != nil {
		s.logger.Error("Failed to fetch notifications", zap.Error(err3))
	} else {
		s.Notifications = notifications
	}
}

// AcceptConnection awaits the server ack and only then patches the mirror
func (s *State) AcceptConnection(connectionID primitive.ObjectID) error {
	if _, err := s.client.Accept(connectionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Connections {
		if s.Connections[i].ID == connectionID {
			s.Connections[i].Status = models.ConnectionStatusAccepted
		}
	}
	return nil
}

// RejectConnection awaits the server ack and only then patches the mirror
func (s *State) RejectConnection(connectionID primitive.ObjectID) error {
	if _, err := s.client.Reject(connectionID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Connections {
		if s.Connections[i].ID == connectionID {
			s.Connections[i].Status = models.ConnectionStatusRejected
		}
	}
	return nil
}

// SendMessage persists the message and appends it to the mirror on success
func (s *State) SendMessage(receiverID primitive.ObjectID, content string, msgType models.MessageType, metadata *models.MessageMetadata) error {
	msg, err := s.client.SendMessage(receiverID, content, msgType, metadata)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, *msg)
	return nil
}

// MarkMessagesRead acks the buddy's messages and flips them locally
func (s *State) MarkMessagesRead(buddyID primitive.ObjectID) error {
	if err := s.client.MarkMessagesRead(buddyID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Messages {
		if s.Messages[i].SenderId == buddyID && s.Messages[i].ReceiverId == s.CurrentUser.Id {
			s.Messages[i].Read = true
		}
	}
	return nil
}

// MarkNotificationRead flips one notification; failures are logged and
// swallowed, leaving the mirror inconsistent until the next refresh
func (s *State) MarkNotificationRead(notificationID primitive.ObjectID) {
	if err := s.client.MarkNotificationRead(notificationID); err != nil {
		s.logger.Error("Failed to mark notification as read", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Notifications {
		if s.Notifications[i].ID == notificationID {
			s.Notifications[i].Read = true
		}
	}
}

// ClearNotifications deletes all of the user's notifications server-side and
// empties the mirror on success
func (s *State) ClearNotifications() {
	if err := s.client.ClearNotifications(); err != nil {
		s.logger.Error("Failed to clear notifications", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notifications = nil
}

// ToggleMute flips a buddy in the local-only muted set
func (s *State) ToggleMute(buddyID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.MutedBuddies {
		if id == buddyID {
			s.MutedBuddies = append(s.MutedBuddies[:i], s.MutedBuddies[i+1:]...)
			return
		}
	}
	s.MutedBuddies = append(s.MutedBuddies, buddyID)
}

// ConnectedBuddies resolves accepted connections to the partner's profile,
// defaulting fields the server may have left empty
func (s *State) ConnectedBuddies() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buddies := make([]models.User, 0)
	for _, conn := range s.Connections {
		if conn.Status != models.ConnectionStatusAccepted {
			continue
		}

		partner := conn.ToUser
		if conn.FromUser.Id != s.CurrentUser.Id {
			partner = conn.FromUser
		}

		if partner.Availability == "" {
			partner.Availability = models.AvailabilityOffline
		}
		if partner.Completeness == 0 {
			partner.Completeness = 100
		}
		if partner.Avatar == "" {
			partner.Avatar = fmt.Sprintf("https://ui-avatars.com/api/?name=%s", partner.Name)
		}

		buddies = append(buddies, partner)
	}
	return buddies
}

// MyNotifications filters the mirror to notifications addressed to the
// current user
func (s *State) MyNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mine := make([]Notification, 0)
	for _, n := range s.Notifications {
		if n.UserId == s.CurrentUser.Id {
			mine = append(mine, n)
		}
	}
	return mine
}

// UnreadNotificationCount counts unread notifications for the current user
func (s *State) UnreadNotificationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.Notifications {
		if n.UserId == s.CurrentUser.Id && !n.Read {
			count++
		}
	}
	return count
}

// UnseenMessageCount counts unread messages addressed to the current user
func (s *State) UnseenMessageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.Messages {
		if m.ReceiverId == s.CurrentUser.Id && !m.Read {
			count++
		}
	}
	return count
}
