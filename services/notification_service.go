package services

import (
	"log"
	"time"

	"neuralife-notes/neuralife/models"
)

// Notification event types surfaced to the presentation layer.
const (
	NotifyOnline        = "sync.online"
	NotifyOffline       = "sync.offline"
	NotifySyncCompleted = "sync.completed"
	NotifySyncFailed    = "sync.failed"
	NotifyStateChanged  = "state.changed"
)

type NotificationServiceInterface interface {
	PublishNotification(userID, eventType, message string) error
}

// NotificationService fans user-facing status events out to the
// WebSocket feed. Without a hub attached it degrades to logging, which
// is what unit tests rely on.
type NotificationService struct {
	hub WebSocketServiceInterface
}

func NewNotificationService(hub WebSocketServiceInterface) NotificationServiceInterface {
	return &NotificationService{hub: hub}
}

func (s *NotificationService) PublishNotification(userID, eventType, message string) error {
	log.Printf("Notification for %s: %s %s", userID, eventType, message)

	if s.hub == nil {
		return nil
	}

	event := models.NotificationEvent{
		UserID:    userID,
		EventType: eventType,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	msg := models.NewStandardMessage(models.NotificationMessage, eventType, map[string]interface{}{
		"user_id":   event.UserID,
		"message":   event.Message,
		"timestamp": event.Timestamp,
	})

	data, err := msg.ToJSON()
	if err != nil {
		return err
	}

	s.hub.BroadcastToUser(userID, data)
	return nil
}

var NotificationServiceInstance NotificationServiceInterface
