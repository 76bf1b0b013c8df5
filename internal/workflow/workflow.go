// Package workflow drives the routine composition screen: loading a routine,
// attaching library or newly created trainings, configuring per-exercise
// overrides and detaching or deleting. It holds no rendering; a UI port
// receives alerts, confirmations and navigation.
package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TabTrainings is the active-tab hint written after a routine is deleted.
const TabTrainings = "trainings"

var (
	ErrRoutineNotFound  = errors.New("routine not found")
	ErrNotLoaded        = errors.New("routine is not loaded")
	ErrAlreadyLinked    = errors.New("training is already linked to this routine")
	ErrUnknownTraining  = errors.New("training is not in the library")
	ErrNothingSelected  = errors.New("no training selected for configuration")
	ErrRowOutOfRange    = errors.New("configuration row out of range")
	ErrInvalidRepType   = errors.New("invalid rep type")
	ErrNameRequired     = errors.New("training name is required")
	ErrWeekdayRequired  = errors.New("a weekday is required for this routine")
	ErrSequenceRequired = errors.New("a positive training number is required for this routine")
	ErrBusy             = errors.New("another action is still running")
	ErrCanceled         = errors.New("canceled by user")
)

// API is the part of the remote contract the workflow consumes.
type API interface {
	GetRoutine(ctx context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error)
	DeleteRoutine(ctx context.Context, id primitive.ObjectID) error
	ListRoutineTrainings(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error)
	CreateRoutineTraining(ctx context.Context, in domain.NewRoutineTraining) (*domain.RoutineTraining, error)
	DeleteRoutineTraining(ctx context.Context, id primitive.ObjectID) error
	ResolvedExercises(ctx context.Context, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error)
	LibraryTrainings(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Training, error)
	CreateTraining(ctx context.Context, in domain.NewTraining) (*domain.Training, error)
	DeleteTraining(ctx context.Context, id primitive.ObjectID) error
	ExerciseDefaults(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error)
}

// UI is what the screen shows to the user.
type UI interface {
	Alert(title, message string)
	// Confirm asks a cancel/destructive question and reports whether the user confirmed.
	Confirm(title, message string) bool
	NavigateBack()
}

// Prefs persists the active-tab hint read by the previous screen.
type Prefs interface {
	SetActiveTab(ctx context.Context, tab string) error
}

// Env is the explicit context a workflow runs with.
type Env struct {
	UserID   primitive.ObjectID
	UserType domain.Role
	API      API
	UI       UI
	Prefs    Prefs
}

// userMessage returns the server's message for err, or fallback.
func userMessage(err error, fallback string) string {
	var withMessage interface{ UserMessage() string }
	if errors.As(err, &withMessage) && withMessage.UserMessage() != "" {
		return withMessage.UserMessage()
	}
	return fallback
}
