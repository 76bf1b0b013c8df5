// Package session persists the signed-in identity on the device.
package session

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/localstore"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	keySession   = "session"
	keyActiveTab = "active_tab"
)

var (
	ErrNoSession      = errors.New("not signed in")
	ErrSessionExpired = errors.New("session expired, sign in again")
)

// Store keeps the current Session and the active-tab hint in a localstore.
type Store struct {
	kv  localstore.Store
	now func() time.Time
}

func NewStore(kv localstore.Store) *Store {
	return &Store{kv: kv, now: time.Now}
}

// FromLogin builds a Session from a login response. The expiry comes from the
// token's exp claim; the client has no signing key, so the token is not verified.
func FromLogin(token string, user domain.User) (domain.Session, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return domain.Session{}, fmt.Errorf("malformed token: %w", err)
	}
	sess := domain.Session{
		UserID:   user.ID,
		Name:     user.Name,
		UserType: user.Role,
		Token:    token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keySession, b)
}

// Load returns the stored session. An expired session is still returned
// alongside ErrSessionExpired so callers can show who was signed in.
func (s *Store) Load(ctx context.Context) (domain.Session, error) {
	b, err := s.kv.Get(ctx, keySession)
	if errors.Is(err, localstore.ErrNotFound) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("corrupt session: %w", err)
	}
	if sess.Expired(s.now()) {
		return sess, ErrSessionExpired
	}
	return sess, nil
}

// Clear signs out: the session and the active-tab hint are removed.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, keySession); err != nil {
		return err
	}
	return s.kv.Delete(ctx, keyActiveTab)
}

// Token returns the bearer token of a valid session.
func (s *Store) Token(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

func (s *Store) SetActiveTab(ctx context.Context, tab string) error {
	return s.kv.Set(ctx, keyActiveTab, []byte(tab))
}

// ActiveTab returns the last written tab, or "" when none was written.
func (s *Store) ActiveTab(ctx context.Context) (string, error) {
	b, err := s.kv.Get(ctx, keyActiveTab)
	if errors.Is(err, localstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}
