package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/models"
)

func newLocalState() *State {
	s := NewState(New("http://unreachable.invalid", zap.NewNop()), zap.NewNop())
	s.CurrentUser = models.User{Id: primitive.NewObjectID(), Name: "Me"}
	return s
}

func TestConnectedBuddiesResolvesPartnerAndDefaults(t *testing.T) {
	s := newLocalState()
	partner := models.User{Id: primitive.NewObjectID(), Name: "Bob"}

	s.Connections = []models.ConnectionDto{
		{
			ID:       primitive.NewObjectID(),
			FromUser: s.CurrentUser,
			ToUser:   partner,
			Status:   models.ConnectionStatusAccepted,
		},
		{
			ID:       primitive.NewObjectID(),
			FromUser: models.User{Id: primitive.NewObjectID(), Name: "Pending Pat"},
			ToUser:   s.CurrentUser,
			Status:   models.ConnectionStatusPending,
		},
	}

	buddies := s.ConnectedBuddies()
	assert.Len(t, buddies, 1)
	assert.Equal(t, "Bob", buddies[0].Name)
	// Missing fields get defaulted for rendering
	assert.Equal(t, models.AvailabilityOffline, buddies[0].Availability)
	assert.Equal(t, 100, buddies[0].Completeness)
	assert.True(t, strings.Contains(buddies[0].Avatar, "ui-avatars.com"))
}

func TestConnectedBuddiesResolvesIncomingPartner(t *testing.T) {
	s := newLocalState()
	partner := models.User{Id: primitive.NewObjectID(), Name: "Carol", Availability: models.AvailabilityOnline}

	s.Connections = []models.ConnectionDto{
		{
			ID:       primitive.NewObjectID(),
			FromUser: partner,
			ToUser:   s.CurrentUser,
			Status:   models.ConnectionStatusAccepted,
		},
	}

	buddies := s.ConnectedBuddies()
	assert.Len(t, buddies, 1)
	assert.Equal(t, "Carol", buddies[0].Name)
	assert.Equal(t, models.AvailabilityOnline, buddies[0].Availability)
}

func TestUnreadCounters(t *testing.T) {
	s := newLocalState()
	other := primitive.NewObjectID()

	s.Messages = []models.Message{
		{SenderId: other, ReceiverId: s.CurrentUser.Id, Read: false},
		{SenderId: other, ReceiverId: s.CurrentUser.Id, Read: true},
		{SenderId: s.CurrentUser.Id, ReceiverId: other, Read: false}, // outgoing, never counted
	}
	s.Notifications = []Notification{
		{ID: primitive.NewObjectID(), UserId: s.CurrentUser.Id, Read: false},
		{ID: primitive.NewObjectID(), UserId: s.CurrentUser.Id, Read: true},
		{ID: primitive.NewObjectID(), UserId: other, Read: false}, // someone else's
	}

	assert.Equal(t, 1, s.UnseenMessageCount())
	assert.Equal(t, 1, s.UnreadNotificationCount())
	assert.Len(t, s.MyNotifications(), 2)
}

func TestAcceptConnectionPatchesAfterAck(t *testing.T) {
	connID := primitive.NewObjectID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/connections/accept/"+connID.Hex(), r.URL.Path)
		json.NewEncoder(w).Encode(models.Connection{Id: connID, Status: models.ConnectionStatusAccepted})
	}))
	defer srv.Close()

	s := NewState(New(srv.URL, zap.NewNop()), zap.NewNop())
	s.CurrentUser = models.User{Id: primitive.NewObjectID()}
	s.Connections = []models.ConnectionDto{{ID: connID, Status: models.ConnectionStatusPending}}

	err := s.AcceptConnection(connID)
	assert.NoError(t, err)
	assert.Equal(t, models.ConnectionStatusAccepted, s.Connections[0].Status)
}

func TestAcceptConnectionLeavesStateOnFailure(t *testing.T) {
	connID := primitive.NewObjectID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized"})
	}))
	defer srv.Close()

	s := NewState(New(srv.URL, zap.NewNop()), zap.NewNop())
	s.CurrentUser = models.User{Id: primitive.NewObjectID()}
	s.Connections = []models.ConnectionDto{{ID: connID, Status: models.ConnectionStatusPending}}

	err := s.AcceptConnection(connID)
	assert.Error(t, err)
	assert.Equal(t, models.ConnectionStatusPending, s.Connections[0].Status)
}

func TestMarkMessagesReadFlipsOnlyIncoming(t *testing.T) {
	buddy := primitive.NewObjectID()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "Messages marked as read"})
	}))
	defer srv.Close()

	s := NewState(New(srv.URL, zap.NewNop()), zap.NewNop())
	s.CurrentUser = models.User{Id: primitive.NewObjectID()}
	s.Messages = []models.Message{
		{SenderId: buddy, ReceiverId: s.CurrentUser.Id, Read: false},
		{SenderId: s.CurrentUser.Id, ReceiverId: buddy, Read: false},
	}

	err := s.MarkMessagesRead(buddy)
	assert.NoError(t, err)
	assert.True(t, s.Messages[0].Read)
	assert.False(t, s.Messages[1].Read, "messages in the opposite direction must be unaffected")
}

func TestClearNotificationsEmptiesMirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "Notifications cleared"})
	}))
	defer srv.Close()

	s := NewState(New(srv.URL, zap.NewNop()), zap.NewNop())
	s.CurrentUser = models.User{Id: primitive.NewObjectID()}
	s.Notifications = []Notification{{ID: primitive.NewObjectID(), UserId: s.CurrentUser.Id}}

	s.ClearNotifications()
	assert.Empty(t, s.Notifications)
}

func TestRefreshSwallowsFetchFailures(t *testing.T) {
	s := newLocalState() // unreachable server
	s.Messages = []models.Message{{SenderId: primitive.NewObjectID(), ReceiverId: s.CurrentUser.Id}}

	s.Refresh()
	// Prior mirror stays in place when every fetch fails
	assert.Len(t, s.Messages, 1)
}

func TestToggleMute(t *testing.T) {
	s := newLocalState()
	buddy := primitive.NewObjectID()

	s.ToggleMute(buddy)
	assert.Contains(t, s.MutedBuddies, buddy)

	s.ToggleMute(buddy)
	assert.NotContains(t, s.MutedBuddies, buddy)
}

func TestStudyRoomLifecycle(t *testing.T) {
	s := newLocalState()

	room := s.CreateRoom("Thermo cram", StudySessionExamPrep, "Physics", "Entropy", "")
	assert.Equal(t, StudyRoomActive, room.Status)
	assert.Len(t, room.CurrentParticipants, 1)

	// Creator re-joining is a no-op
	assert.True(t, s.JoinRoom(room.Id))
	assert.Len(t, s.StudyRooms[0].CurrentParticipants, 1)

	msg := s.PostRoomMessage(room.Id, "starting at 7pm")
	assert.Equal(t, room.Id, msg.RoomId)
	assert.Len(t, s.RoomMessages, 1)
}

func TestAssignmentLifecycle(t *testing.T) {
	s := newLocalState()

	a := s.AddAssignment("Problem set 3", "Math", "high", "standard", time.Now().Add(48*time.Hour))
	assert.Equal(t, AssignmentPending, a.Status)

	s.SetAssignmentStatus(a.Id, AssignmentCompleted)
	assert.Equal(t, AssignmentCompleted, s.Assignments[0].Status)

	s.RemoveAssignment(a.Id)
	assert.Empty(t, s.Assignments)
}
