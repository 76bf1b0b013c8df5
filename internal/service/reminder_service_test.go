package service

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSendEndingReminders(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 26, 9, 0, 0, 0, time.UTC)
	repo := newFakeRoutineRepo()
	pub := &fakePublisher{}

	ending := &domain.TrainingRoutine{
		TrainerID: primitive.NewObjectID(), StudentID: primitive.NewObjectID(),
		Goal: "Hipertrofia", StudentName: "Rui", EndDate: now.Add(48 * time.Hour),
	}
	_, err := repo.Create(ctx, ending)
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.TrainingRoutine{
		TrainerID: primitive.NewObjectID(), StudentID: primitive.NewObjectID(),
		Goal: "Longe", EndDate: now.Add(10 * 24 * time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.TrainingRoutine{
		TrainerID: primitive.NewObjectID(), StudentID: primitive.NewObjectID(),
		Goal: "Acabou", EndDate: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	n, err := NewReminderService(repo, pub).SendEndingReminders(ctx, now, 3*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, pub.sent, 2)
	assert.Equal(t, ending.StudentID, pub.sent[0].UserID)
	assert.Equal(t, ending.TrainerID, pub.sent[1].UserID)
	for _, s := range pub.sent {
		assert.Equal(t, domain.NotificationRoutineEnding, s.Notification.Type)
		assert.Equal(t, ending.ID.Hex(), s.Notification.Data["routine_id"])
		assert.Equal(t, "2026-02-28", s.Notification.Data["end_date"])
	}
	assert.Contains(t, pub.sent[1].Notification.Title, "Rui")
}

func TestSendEndingReminders_NilPublisher(t *testing.T) {
	repo := newFakeRoutineRepo()
	now := time.Now()
	_, err := repo.Create(context.Background(), &domain.TrainingRoutine{EndDate: now.Add(time.Hour)})
	require.NoError(t, err)

	n, err := NewReminderService(repo, nil).SendEndingReminders(context.Background(), now, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
