package notify

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Notifier surfaces a notification to the user on this device.
type Notifier interface {
	Notify(n domain.Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n domain.Notification) error

func (f NotifierFunc) Notify(n domain.Notification) error { return f(n) }

// Relay keeps a socket to the hub open for one session and forwards every
// event to the Notifier and the Log.
type Relay struct {
	url      string
	session  domain.Session
	notifier Notifier
	log      *Log
	dialer   *websocket.Dialer

	MinBackoff time.Duration
	MaxBackoff time.Duration
	// ackWait bounds the wait for the registration ack; idleWait is how long
	// the socket may stay silent before the hub is considered gone.
	ackWait  time.Duration
	idleWait time.Duration
	// OnRegistered, when set, runs after each successful registration.
	OnRegistered func()
}

func NewRelay(url string, sess domain.Session, notifier Notifier, entries *Log) *Relay {
	return &Relay{
		url:        url,
		session:    sess,
		notifier:   notifier,
		log:        entries,
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		MinBackoff: time.Second,
		MaxBackoff: time.Minute,
		ackWait:    registerWait,
		idleWait:   pongWait,
	}
}

// Run connects and reconnects with capped exponential backoff until ctx ends.
func (r *Relay) Run(ctx context.Context) error {
	backoff := r.MinBackoff
	for {
		registered, err := r.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if registered {
			backoff = r.MinBackoff
		}
		log.Printf("WARN: Notification socket closed: %v; reconnecting in %s", err, backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > r.MaxBackoff {
			backoff = r.MaxBackoff
		}
	}
}

func (r *Relay) runOnce(ctx context.Context) (bool, error) {
	header := http.Header{"Authorization": []string{"Bearer " + r.session.Token}}
	ws, resp, err := r.dialer.DialContext(ctx, r.url, header)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("dial %s: %s", r.url, resp.Status)
		}
		return false, fmt.Errorf("dial %s: %w", r.url, err)
	}
	defer ws.Close()

	// Closing the socket unblocks any pending read when ctx ends.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ws.Close()
		case <-stop:
		}
	}()

	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteJSON(Envelope{Type: TypeRegister, UserID: r.session.UserID.Hex()}); err != nil {
		return false, err
	}
	_ = ws.SetReadDeadline(time.Now().Add(r.ackWait))
	var ack Envelope
	if err := ws.ReadJSON(&ack); err != nil {
		return false, fmt.Errorf("waiting for registration: %w", err)
	}
	if ack.Type != TypeRegistered {
		return false, errors.New("registration refused: " + ack.Error)
	}
	if r.OnRegistered != nil {
		r.OnRegistered()
	}

	// The hub pings every pingPeriod; each ping pushes the deadline forward.
	_ = ws.SetReadDeadline(time.Now().Add(r.idleWait))
	ws.SetPingHandler(func(appData string) error {
		_ = ws.SetReadDeadline(time.Now().Add(r.idleWait))
		err := ws.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(writeWait))
		if err == websocket.ErrCloseSent {
			return nil
		}
		return err
	})

	for {
		var env Envelope
		if err := ws.ReadJSON(&env); err != nil {
			return true, err
		}
		_ = ws.SetReadDeadline(time.Now().Add(r.idleWait))
		if env.Type != TypeNotification || env.Notification == nil {
			continue
		}
		r.forward(ctx, *env.Notification)
	}
}

func (r *Relay) forward(ctx context.Context, n domain.Notification) {
	if r.log != nil {
		if _, err := r.log.Append(ctx, n); err != nil {
			log.Printf("WARN: Failed to record notification %s: %v", n.ID, err)
		}
	}
	if r.notifier != nil {
		if err := r.notifier.Notify(n); err != nil {
			log.Printf("WARN: Failed to show notification %s: %v", n.ID, err)
		}
	}
}
