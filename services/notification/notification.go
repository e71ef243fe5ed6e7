package notification

import (
	"context"

	"pescalia/models"
	"pescalia/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends push notifications to guides. Every send is
// best-effort: callers log failures and continue, a missed push never fails
// the triggering operation.
type NotificationService interface {
	NotifyGuide(ctx context.Context, guide *models.Guide, title, body string, data map[string]string) error
}

// FCMNotificationService implements NotificationService on Firebase Cloud
// Messaging via the shared utils.FCMClient.
type FCMNotificationService struct {
	Logger *zap.Logger
}

func (s *FCMNotificationService) NotifyGuide(ctx context.Context, guide *models.Guide, title, body string, data map[string]string) error {
	if guide.FCMToken == "" {
		s.Logger.Debug("guide has no push token, skipping notification", zap.String("guideId", guide.ID))
		return nil
	}

	msg := &messaging.Message{
		Token: guide.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		s.Logger.Warn("failed to send push notification",
			zap.String("guideId", guide.ID), zap.Error(err))
		return err
	}
	return nil
}
