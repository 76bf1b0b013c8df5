package repository

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Is lets ErrNotFound match the shared domain sentinel.
func (e RepositoryError) Is(target error) bool {
	return e == ErrNotFound && target == domain.ErrNotFound
}

// NotFound wraps ErrNotFound with the entity that was missing.
func NotFound(entity string, id primitive.ObjectID) error {
	return fmt.Errorf("%s %s: %w", entity, id.Hex(), ErrNotFound)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddStudentIDToTrainer(ctx context.Context, trainerID, studentID primitive.ObjectID) error
	GetStudentsByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	SetTrainerForStudent(ctx context.Context, studentID, trainerID primitive.ObjectID) error
}

// ExerciseRepository defines the interface for interacting with the exercise catalog.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error)
	SetMediaKey(ctx context.Context, id primitive.ObjectID, mediaKey string) error
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error // Ensure trainer owns the exercise
}

// RoutineRepository defines the interface for interacting with training routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.TrainingRoutine) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainingRoutine, error)
	GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.TrainingRoutine, error)
	GetEndingBetween(ctx context.Context, from, to time.Time) ([]domain.TrainingRoutine, error)
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error
}

// TrainingRepository defines the interface for interacting with trainings.
type TrainingRepository interface {
	Create(ctx context.Context, training *domain.Training) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Training, error)
	GetLibraryByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Training, error)
	Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error
}

// RoutineTrainingRepository defines the interface for routine/training links.
type RoutineTrainingRepository interface {
	Create(ctx context.Context, link *domain.RoutineTraining) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineTraining, error)
	GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error)
	CountByTrainingID(ctx context.Context, trainingID primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) (int64, error)
}

// ExerciseTrainingRepository defines the interface for per-training exercise defaults.
type ExerciseTrainingRepository interface {
	Create(ctx context.Context, et *domain.ExerciseTraining) (primitive.ObjectID, error)
	GetByTrainingID(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error)
	DeleteByTrainingID(ctx context.Context, trainingID primitive.ObjectID) (int64, error)
}
