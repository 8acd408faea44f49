package testutils

import (
	"sync"
)

// RecordedNotification captures one PublishNotification call.
type RecordedNotification struct {
	UserID    string
	EventType string
	Message   string
}

// RecordingNotifier implements NotificationServiceInterface for tests.
type RecordingNotifier struct {
	mu     sync.Mutex
	events []RecordedNotification
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (n *RecordingNotifier) PublishNotification(userID, eventType, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, RecordedNotification{
		UserID:    userID,
		EventType: eventType,
		Message:   message,
	})
	return nil
}

// Events returns a copy of everything published so far.
func (n *RecordingNotifier) Events() []RecordedNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]RecordedNotification, len(n.events))
	copy(out, n.events)
	return out
}

// EventsOfType filters recorded notifications by event type.
func (n *RecordingNotifier) EventsOfType(eventType string) []RecordedNotification {
	var out []RecordedNotification
	for _, e := range n.Events() {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}
