package api

import (
	"alcyxob/fitcoach/internal/notify"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// NotificationHandler upgrades authenticated requests to the notification socket.
type NotificationHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

func NewNotificationHandler(hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients are native apps and the CLI; the bearer token is the gate.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Connect godoc
// @Summary Open the notification WebSocket
// @Description The first frame must be {"type":"register","user_id":"<own id>"}.
// @Tags Notifications
// @Security BearerAuth
// @Router /ws [get]
func (h *NotificationHandler) Connect(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Printf("WARN: WebSocket upgrade failed for user %s: %v", userID.Hex(), err)
		return
	}

	if err := h.hub.Serve(c.Request.Context(), ws, userID); err != nil {
		if errors.Is(err, notify.ErrRegistrationMismatch) {
			log.Printf("WARN: Rejected notification socket for user %s: %v", userID.Hex(), err)
			return
		}
		log.Printf("INFO: Notification socket for user %s closed: %v", userID.Hex(), err)
	}
}
