package domain

import "time"

// Notification types pushed to connected clients.
const (
	NotificationTrainingLinked   = "training_linked"
	NotificationTrainingUnlinked = "training_unlinked"
	NotificationRoutineDeleted   = "routine_deleted"
	NotificationRoutineEnding    = "routine_ending"
)

// Notification is a server-pushed event.
type Notification struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
