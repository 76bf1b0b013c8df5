package service

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
var ErrInvalidID = errors.New("invalid id")

// Publisher pushes a notification to every live connection of a user.
type Publisher interface {
	Publish(ctx context.Context, userID primitive.ObjectID, n domain.Notification) error
}

func parseObjectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}

func newNotification(kind, title, body string, data map[string]string) domain.Notification {
	return domain.Notification{
		ID:        uuid.NewString(),
		Type:      kind,
		Title:     title,
		Body:      body,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}

// publish is fire-and-forget: a failed push never fails the mutation that caused it.
func publish(ctx context.Context, p Publisher, userID primitive.ObjectID, n domain.Notification) {
	if p == nil || userID == primitive.NilObjectID {
		return
	}
	if err := p.Publish(ctx, userID, n); err != nil {
		log.Printf("WARN: Failed to publish %s notification to user %s: %v", n.Type, userID.Hex(), err)
	}
}
