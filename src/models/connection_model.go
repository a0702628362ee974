package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Connection struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FromUserId primitive.ObjectID `json:"fromUserId" bson:"fromUserId"`
	ToUserId   primitive.ObjectID `json:"toUserId" bson:"toUserId"`
	Status     ConnectionStatus   `json:"status" bson:"status"` // pending, accepted, rejected
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// ConnectionDto is a Connection with both parties populated
type ConnectionDto struct {
	ID        primitive.ObjectID `json:"id"`
	FromUser  User               `json:"fromUserId"`
	ToUser    User               `json:"toUserId"`
	Status    ConnectionStatus   `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
