package notify

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	registerWait = 10 * time.Second
	sendBuffer   = 16
)

var ErrRegistrationMismatch = errors.New("registration does not match the authenticated user")

type hubConn struct {
	ws     *websocket.Conn
	send   chan Envelope
	userID primitive.ObjectID
}

// Hub keeps the live connections of every user on this server instance.
type Hub struct {
	mu      sync.RWMutex
	clients map[primitive.ObjectID]map[*hubConn]struct{}
	closing chan struct{}
	once    sync.Once
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[primitive.ObjectID]map[*hubConn]struct{}),
		closing: make(chan struct{}),
	}
}

// Serve runs one upgraded connection until it drops, ctx ends or the hub
// closes. The peer must register as userID before anything is delivered.
func (h *Hub) Serve(ctx context.Context, ws *websocket.Conn, userID primitive.ObjectID) error {
	defer ws.Close()

	_ = ws.SetReadDeadline(time.Now().Add(registerWait))
	var hello Envelope
	if err := ws.ReadJSON(&hello); err != nil {
		return fmt.Errorf("waiting for register: %w", err)
	}
	if hello.Type != TypeRegister || hello.UserID != userID.Hex() {
		_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
		_ = ws.WriteJSON(Envelope{Type: TypeError, Error: ErrRegistrationMismatch.Error()})
		return ErrRegistrationMismatch
	}

	c := &hubConn{ws: ws, send: make(chan Envelope, sendBuffer), userID: userID}
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteJSON(Envelope{Type: TypeRegistered, UserID: userID.Hex()}); err != nil {
		return err
	}
	h.add(c)
	defer h.remove(c)
	log.Printf("INFO: Notification socket registered for user %s", userID.Hex())

	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound frames are not expected after registration; reading keeps the
	// pong handler running and notices the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeFrame(ws)
			return nil
		case <-h.closing:
			h.closeFrame(ws)
			return nil
		case <-gone:
			return nil
		case env := <-c.send:
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteJSON(env); err != nil {
				return err
			}
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		}
	}
}

func (h *Hub) closeFrame(ws *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	_ = ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

func (h *Hub) add(c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[c.userID]
	if !ok {
		set = make(map[*hubConn]struct{})
		h.clients[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) remove(c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[c.userID]
	delete(set, c)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Deliver queues n on every connection of userID and returns how many took it.
// A connection with a full queue is skipped rather than blocking the caller.
func (h *Hub) Deliver(userID primitive.ObjectID, n domain.Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for c := range h.clients[userID] {
		select {
		case c.send <- Envelope{Type: TypeNotification, Notification: &n}:
			delivered++
		default:
			log.Printf("WARN: Dropping %s notification for user %s: connection is not draining", n.Type, userID.Hex())
		}
	}
	return delivered
}

// Connections reports the live connection count for userID.
func (h *Hub) Connections(userID primitive.ObjectID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Close ends every Serve loop.
func (h *Hub) Close() {
	h.once.Do(func() { close(h.closing) })
}
