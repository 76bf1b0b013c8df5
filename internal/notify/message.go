// Package notify carries server-pushed notifications: the WebSocket hub and
// publishers on the server, the relay and bounded log on the client.
package notify

import "alcyxob/fitcoach/internal/domain"

// Envelope types exchanged over the socket.
const (
	TypeRegister     = "register"
	TypeRegistered   = "registered"
	TypeNotification = "notification"
	TypeError        = "error"
)

// Envelope is the single JSON frame shape used in both directions.
type Envelope struct {
	Type         string               `json:"type"`
	UserID       string               `json:"user_id,omitempty"`
	Notification *domain.Notification `json:"notification,omitempty"`
	Error        string               `json:"error,omitempty"`
}
