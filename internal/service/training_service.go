package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrTrainingNotFound     = errors.New("training not found")
	ErrTrainingAccessDenied = errors.New("access denied to this training")
	ErrTrainingInUse        = errors.New("training is still linked to a routine")
	ErrTrainingNameRequired = errors.New("training name is required")
	ErrInvalidRepType       = errors.New("invalid rep type")
	ErrInvalidSets          = errors.New("sets must be a positive number")
)

// TrainingService manages the trainer's training library and the
// per-exercise defaults of each training.
type TrainingService interface {
	CreateTraining(ctx context.Context, trainerID primitive.ObjectID, in domain.NewTraining) (*domain.Training, error)
	GetTraining(ctx context.Context, trainingID primitive.ObjectID) (*domain.Training, error)
	GetLibrary(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Training, error)
	DeleteTraining(ctx context.Context, trainerID, trainingID primitive.ObjectID) error
	GetExerciseDefaults(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error)
	AddExerciseDefault(ctx context.Context, trainerID, trainingID primitive.ObjectID, in domain.NewExerciseTraining) (*domain.ExerciseTraining, error)
}

type trainingService struct {
	trainingRepo         repository.TrainingRepository
	exerciseRepo         repository.ExerciseRepository
	exerciseTrainingRepo repository.ExerciseTrainingRepository
	linkRepo             repository.RoutineTrainingRepository
}

// NewTrainingService creates a new instance of trainingService.
func NewTrainingService(
	trainingRepo repository.TrainingRepository,
	exerciseRepo repository.ExerciseRepository,
	exerciseTrainingRepo repository.ExerciseTrainingRepository,
	linkRepo repository.RoutineTrainingRepository,
) TrainingService {
	return &trainingService{
		trainingRepo:         trainingRepo,
		exerciseRepo:         exerciseRepo,
		exerciseTrainingRepo: exerciseTrainingRepo,
		linkRepo:             linkRepo,
	}
}

// CreateTraining stores a new training owned by the calling trainer.
// The day_of_week label is stored as sent.
func (s *trainingService) CreateTraining(ctx context.Context, trainerID primitive.ObjectID, in domain.NewTraining) (*domain.Training, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrTrainingNameRequired
	}
	if in.TrainerID != primitive.NilObjectID && in.TrainerID != trainerID {
		return nil, ErrTrainingAccessDenied
	}

	training := &domain.Training{
		Name:      name,
		Notes:     in.Notes,
		DayOfWeek: strings.TrimSpace(in.DayOfWeek),
		TrainerID: trainerID,
		IsLibrary: in.IsLibrary,
	}
	id, err := s.trainingRepo.Create(ctx, training)
	if err != nil {
		return nil, err
	}
	training.ID = id
	return training, nil
}

func (s *trainingService) GetTraining(ctx context.Context, trainingID primitive.ObjectID) (*domain.Training, error) {
	training, err := s.trainingRepo.GetByID(ctx, trainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	return training, nil
}

// GetLibrary lists the trainer's library trainings sorted by name.
func (s *trainingService) GetLibrary(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Training, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	return s.trainingRepo.GetLibraryByTrainerID(ctx, trainerID)
}

// DeleteTraining removes a training and its exercise defaults. A training
// still linked to any routine is refused.
func (s *trainingService) DeleteTraining(ctx context.Context, trainerID, trainingID primitive.ObjectID) error {
	training, err := s.GetTraining(ctx, trainingID)
	if err != nil {
		return err
	}
	if training.TrainerID != trainerID {
		return ErrTrainingAccessDenied
	}

	links, err := s.linkRepo.CountByTrainingID(ctx, trainingID)
	if err != nil {
		return err
	}
	if links > 0 {
		return ErrTrainingInUse
	}

	if err := s.trainingRepo.Delete(ctx, trainingID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTrainingNotFound
		}
		return err
	}
	if _, err := s.exerciseTrainingRepo.DeleteByTrainingID(ctx, trainingID); err != nil {
		return err
	}
	return nil
}

// GetExerciseDefaults lists the exercises of a training in order.
func (s *trainingService) GetExerciseDefaults(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	if _, err := s.GetTraining(ctx, trainingID); err != nil {
		return nil, err
	}
	return s.exerciseTrainingRepo.GetByTrainingID(ctx, trainingID)
}

// AddExerciseDefault appends an exercise to a training. A default load is
// dropped when the rep type does not carry one.
func (s *trainingService) AddExerciseDefault(ctx context.Context, trainerID, trainingID primitive.ObjectID, in domain.NewExerciseTraining) (*domain.ExerciseTraining, error) {
	if !in.RepType.IsValid() {
		return nil, ErrInvalidRepType
	}
	if in.Sets <= 0 {
		return nil, ErrInvalidSets
	}

	training, err := s.GetTraining(ctx, trainingID)
	if err != nil {
		return nil, err
	}
	if training.TrainerID != trainerID {
		return nil, ErrTrainingAccessDenied
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, in.ExerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	if exercise.TrainerID != trainerID {
		return nil, ErrExerciseAccessDenied
	}

	existing, err := s.exerciseTrainingRepo.GetByTrainingID(ctx, trainingID)
	if err != nil {
		return nil, err
	}

	et := &domain.ExerciseTraining{
		TrainingID:   trainingID,
		ExerciseID:   exercise.ID,
		ExerciseName: exercise.Name,
		RepType:      in.RepType,
		Sets:         in.Sets,
		Reps:         in.Reps,
		Time:         in.Time,
		Rest:         in.Rest,
		Order:        len(existing) + 1,
	}
	if in.RepType.IsLoadBearing() {
		et.DefaultLoad = in.DefaultLoad
	}

	id, err := s.exerciseTrainingRepo.Create(ctx, et)
	if err != nil {
		return nil, err
	}
	et.ID = id
	return et, nil
}
