package client

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudyRoom, RoomMessage and Assignment exist only in client memory; no
// persistence endpoints exist for them.

type StudySessionType string

const (
	StudySessionExamPrep       StudySessionType = "Exam Preparation"
	StudySessionAssignmentTalk StudySessionType = "Assignment Discussion"
	StudySessionGeneral        StudySessionType = "General Study"
)

type StudyRoomStatus string

const (
	StudyRoomActive    StudyRoomStatus = "active"
	StudyRoomScheduled StudyRoomStatus = "scheduled"
	StudyRoomCompleted StudyRoomStatus = "completed"
)

type StudyRoom struct {
	Id                  string
	Name                string
	Type                StudySessionType
	Status              StudyRoomStatus
	Subject             string
	Topic               string
	Description         string
	Duration            string
	MaxParticipants     int
	CurrentParticipants []primitive.ObjectID
	CreatorId           primitive.ObjectID
	StartTime           time.Time
}

type RoomMessage struct {
	Id        string
	RoomId    string
	SenderId  primitive.ObjectID
	Content   string
	Timestamp time.Time
}

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentCompleted AssignmentStatus = "completed"
)

type Assignment struct {
	Id       string
	UserId   primitive.ObjectID
	Title    string
	Subject  string
	Deadline time.Time
	Status   AssignmentStatus
	Priority string // low, medium, high
	Type     string // standard, mcq
	Score    int
}

// CreateRoom adds a study room owned by the current user
func (s *State) CreateRoom(name string, sessionType StudySessionType, subject, topic, description string) StudyRoom {
	room := StudyRoom{
		Id:                  uuid.NewString(),
		Name:                name,
		Type:                sessionType,
		Status:              StudyRoomActive,
		Subject:             subject,
		Topic:               topic,
		Description:         description,
		Duration:            "1h",
		MaxParticipants:     10,
		CurrentParticipants: []primitive.ObjectID{s.CurrentUser.Id},
		CreatorId:           s.CurrentUser.Id,
		StartTime:           time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.StudyRooms = append(s.StudyRooms, room)
	return room
}

// JoinRoom adds the current user to a room's participant list if there is space
func (s *State) JoinRoom(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.StudyRooms {
		room := &s.StudyRooms[i]
		if room.Id != roomID {
			continue
		}
		for _, p := range room.CurrentParticipants {
			if p == s.CurrentUser.Id {
				return true
			}
		}
		if len(room.CurrentParticipants) >= room.MaxParticipants {
			return false
		}
		room.CurrentParticipants = append(room.CurrentParticipants, s.CurrentUser.Id)
		return true
	}
	return false
}

// PostRoomMessage appends a message to a room the user participates in
func (s *State) PostRoomMessage(roomID, content string) RoomMessage {
	msg := RoomMessage{
		Id:        uuid.NewString(),
		RoomId:    roomID,
		SenderId:  s.CurrentUser.Id,
		Content:   content,
		Timestamp: time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.RoomMessages = append(s.RoomMessages, msg)
	return msg
}

// AddAssignment tracks a new assignment for the current user
func (s *State) AddAssignment(title, subject, priority, assignmentType string, deadline time.Time) Assignment {
	assignment := Assignment{
		Id:       uuid.NewString(),
		UserId:   s.CurrentUser.Id,
		Title:    title,
		Subject:  subject,
		Deadline: deadline,
		Status:   AssignmentPending,
		Priority: priority,
		Type:     assignmentType,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Assignments = append(s.Assignments, assignment)
	return assignment
}

// SetAssignmentStatus flips an assignment between pending and completed
func (s *State) SetAssignmentStatus(assignmentID string, status AssignmentStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Assignments {
		if s.Assignments[i].Id == assignmentID {
			s.Assignments[i].Status = status
		}
	}
}

// RemoveAssignment drops an assignment from the local list
func (s *State) RemoveAssignment(assignmentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Assignments {
		if s.Assignments[i].Id == assignmentID {
			s.Assignments = append(s.Assignments[:i], s.Assignments[i+1:]...)
			return
		}
	}
}
