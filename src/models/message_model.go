package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Message struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderId   primitive.ObjectID `json:"senderId" bson:"senderId"`
	ReceiverId primitive.ObjectID `json:"receiverId" bson:"receiverId"`
	Content    string             `json:"content" bson:"content"`
	Type       MessageType        `json:"type" bson:"type"` // text, resource, question
	Metadata   *MessageMetadata   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Read       bool               `json:"read" bson:"read"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
}

type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeResource MessageType = "resource"
	MessageTypeQuestion MessageType = "question"
)

type MessageMetadata struct {
	Link     string `json:"link,omitempty" bson:"link,omitempty"`
	FileName string `json:"fileName,omitempty" bson:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty" bson:"fileType,omitempty"`
}
