package notify

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocalPublisher delivers straight into this instance's hub.
type LocalPublisher struct {
	hub *Hub
}

func NewLocalPublisher(hub *Hub) *LocalPublisher {
	return &LocalPublisher{hub: hub}
}

func (p *LocalPublisher) Publish(_ context.Context, userID primitive.ObjectID, n domain.Notification) error {
	p.hub.Deliver(userID, n)
	return nil
}

type redisMessage struct {
	UserID       string              `json:"user_id"`
	Notification domain.Notification `json:"notification"`
}

// RedisPublisher fans notifications out through a Redis channel so every
// server instance can reach the users connected to it. Run must be started
// for this instance's hub to receive anything.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
}

func NewRedisPublisher(rdb *redis.Client, channel string, hub *Hub) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: channel, hub: hub}
}

func (p *RedisPublisher) Publish(ctx context.Context, userID primitive.ObjectID, n domain.Notification) error {
	payload, err := json.Marshal(redisMessage{UserID: userID.Hex(), Notification: n})
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, p.channel, payload).Err()
}

// Run subscribes to the channel and delivers into the local hub until ctx ends.
func (p *RedisPublisher) Run(ctx context.Context) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", p.channel, err)
	}
	log.Printf("INFO: Subscribed to notification channel %s", p.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var m redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				log.Printf("WARN: Ignoring malformed notification on %s: %v", p.channel, err)
				continue
			}
			userID, err := primitive.ObjectIDFromHex(m.UserID)
			if err != nil {
				log.Printf("WARN: Ignoring notification with bad user id %q", m.UserID)
				continue
			}
			p.hub.Deliver(userID, m.Notification)
		}
	}
}
