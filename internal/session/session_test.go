package session

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/localstore"
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("server-only"))
	require.NoError(t, err)
	return s
}

func TestFromLogin_ReadsExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	user := domain.User{ID: primitive.NewObjectID(), Name: "Carla", Role: domain.RoleTrainer}

	sess, err := FromLogin(signedToken(t, exp), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.Equal(t, domain.RoleTrainer, sess.UserType)
	assert.True(t, sess.ExpiresAt.Equal(exp))

	_, err = FromLogin("not-a-jwt", user)
	assert.Error(t, err)
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(localstore.NewMemoryStore())

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	sess := domain.Session{UserID: primitive.NewObjectID(), Name: "Carla", UserType: domain.RoleTrainer, Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	tok, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)

	require.NoError(t, store.SetActiveTab(ctx, "trainings"))
	tab, err := store.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trainings", tab)

	require.NoError(t, store.Clear(ctx))
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	tab, err = store.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Empty(t, tab)
}

func TestStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewStore(localstore.NewMemoryStore())
	store.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	require.NoError(t, store.Save(ctx, domain.Session{Name: "Rui", Token: "old", ExpiresAt: time.Date(2029, 1, 1, 0, 0, 0, 0, time.UTC)}))

	sess, err := store.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, "Rui", sess.Name)

	_, err = store.Token(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
