package service

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStudentByEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewTrainerService(users)
	ctx := context.Background()

	trainer := domain.User{Name: "Carla", Email: "carla@example.com", Role: domain.RoleTrainer}
	_, _ = users.Create(ctx, &trainer)
	other := domain.User{Name: "Beto", Email: "beto@example.com", Role: domain.RoleTrainer}
	_, _ = users.Create(ctx, &other)
	student := domain.User{Name: "Rui", Email: "rui@example.com", Role: domain.RoleStudent}
	_, _ = users.Create(ctx, &student)

	added, err := svc.AddStudentByEmail(ctx, trainer.ID, "rui@example.com")
	require.NoError(t, err)
	require.NotNil(t, added.TrainerID)
	assert.Equal(t, trainer.ID, *added.TrainerID)

	again, err := svc.AddStudentByEmail(ctx, trainer.ID, "rui@example.com")
	require.NoError(t, err)
	assert.Equal(t, student.ID, again.ID)

	_, err = svc.AddStudentByEmail(ctx, other.ID, "rui@example.com")
	assert.ErrorIs(t, err, ErrStudentAlreadyAssigned)

	_, err = svc.AddStudentByEmail(ctx, trainer.ID, "beto@example.com")
	assert.ErrorIs(t, err, ErrStudentNotRole)

	_, err = svc.AddStudentByEmail(ctx, trainer.ID, "ghost@example.com")
	assert.ErrorIs(t, err, ErrStudentNotFound)

	students, err := svc.GetStudents(ctx, trainer.ID)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Rui", students[0].Name)
}
