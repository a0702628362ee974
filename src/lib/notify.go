package lib

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lmsbuddy/backend/src/models"
)

// Dispatch appends a notification for recipient as a side effect of a
// connection or message write. The primary write has already succeeded at this
// point, so a failed insert is logged and swallowed: the caller's mutation
// stands either way.
func Dispatch(ctx context.Context, recipient, from primitive.ObjectID, notifType models.NotificationType, content string) {
	notification := models.Notification{
		Id:         primitive.NewObjectID(),
		UserId:     recipient,
		FromUserId: from,
		Type:       notifType,
		Content:    content,
		Read:       false,
		Timestamp:  time.Now(),
	}

	_, err := DB.Collection("notifications").InsertOne(ctx, notification)
	if err != nil {
		Logger.Error("Failed to create notification",
			zap.String("type", string(notifType)),
			zap.String("recipient", recipient.Hex()),
			zap.Error(err),
		)
	}
}
