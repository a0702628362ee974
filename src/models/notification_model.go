package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserId     primitive.ObjectID `json:"userId" bson:"userId"`         // recipient
	FromUserId primitive.ObjectID `json:"fromUserId" bson:"fromUserId"` // actor that triggered it
	Type       NotificationType   `json:"type" bson:"type"`
	Content    string             `json:"content" bson:"content"`
	Read       bool               `json:"read" bson:"read"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

type NotificationType string

const (
	NotificationTypeInvitation NotificationType = "invitation"
	NotificationTypeAcceptance NotificationType = "acceptance"
	NotificationTypeRejection  NotificationType = "rejection"
	NotificationTypeMessage    NotificationType = "message"
	NotificationTypeResource   NotificationType = "resource"
)
