package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Session is the signed-in identity held on the device.
type Session struct {
	UserID    primitive.ObjectID `json:"user_id"`
	Name      string             `json:"name"`
	UserType  Role               `json:"user_type"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Expired reports whether the session token is past its expiry.
// A zero ExpiresAt never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
