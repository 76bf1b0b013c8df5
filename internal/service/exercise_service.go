package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"alcyxob/fitcoach/internal/storage"
	"context"
	"errors"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseAccessDenied = errors.New("access denied to modify or delete this exercise")
	ErrExerciseDuplicate    = errors.New("an exercise with this name already exists")
	ErrValidationFailed     = errors.New("exercise validation failed")
	ErrMediaNotFound        = errors.New("exercise has no media")
	ErrStorageUnavailable   = errors.New("media storage is not configured")
)

type ExerciseService interface {
	CreateExercise(ctx context.Context, trainerID primitive.ObjectID, in domain.NewExercise) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	GetExercisesByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error)
	DeleteExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) error
	RequestMediaUpload(ctx context.Context, trainerID, exerciseID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
	GetMediaURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	media        storage.MediaStorage // nil when S3 is not configured
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, media storage.MediaStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		media:        media,
	}
}

// CreateExercise adds an exercise to the trainer's catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, trainerID primitive.ObjectID, in domain.NewExercise) (*domain.Exercise, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrValidationFailed
	}
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required to create an exercise")
	}

	exercise := &domain.Exercise{
		TrainerID:   trainerID,
		Name:        name,
		Description: in.Description,
		MuscleGroup: in.MuscleGroup,
		Difficulty:  in.Difficulty,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseDuplicate
		}
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// GetExercisesByTrainer retrieves all exercises for a specific trainer.
func (s *exerciseService) GetExercisesByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Exercise, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID cannot be nil")
	}
	return s.exerciseRepo.GetByTrainerID(ctx, trainerID)
}

// DeleteExercise removes an exercise and, best effort, its demo media.
func (s *exerciseService) DeleteExercise(ctx context.Context, trainerID, exerciseID primitive.ObjectID) error {
	if trainerID == primitive.NilObjectID || exerciseID == primitive.NilObjectID {
		return errors.New("trainer ID and exercise ID are required")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	if exercise.TrainerID != trainerID {
		return ErrExerciseAccessDenied
	}

	if err := s.exerciseRepo.Delete(ctx, exerciseID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}

	if exercise.MediaKey != "" && s.media != nil {
		if err := s.media.DeleteObject(ctx, exercise.MediaKey); err != nil {
			log.Printf("WARN: Exercise %s deleted but media %s was not: %v", exerciseID.Hex(), exercise.MediaKey, err)
		}
	}
	return nil
}

// RequestMediaUpload issues a presigned PUT for a new demo video and records
// the object key on the exercise. The previous video, if any, is removed.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, trainerID, exerciseID primitive.ObjectID, contentType string) (string, string, error) {
	// 1. Media must be configured and the upload must be a video or image
	if s.media == nil {
		return "", "", ErrStorageUnavailable
	}
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "image/") {
		return "", "", ErrValidationFailed
	}

	// 2. Verify ownership of the exercise
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrExerciseNotFound
		}
		return "", "", err
	}
	if exercise.TrainerID != trainerID {
		return "", "", ErrExerciseAccessDenied
	}

	// 3. Presign a PUT for a fresh object key and record it
	key := storage.ExerciseMediaKey(trainerID, exerciseID)
	url, err := s.media.GeneratePresignedUploadURL(ctx, key, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}
	if err := s.exerciseRepo.SetMediaKey(ctx, exerciseID, key); err != nil {
		return "", "", err
	}

	// 4. Best effort cleanup of the replaced video
	if exercise.MediaKey != "" {
		if err := s.media.DeleteObject(ctx, exercise.MediaKey); err != nil {
			log.Printf("WARN: Failed to delete replaced media %s: %v", exercise.MediaKey, err)
		}
	}
	return url, key, nil
}

// GetMediaURL returns a presigned GET for the exercise's demo video.
func (s *exerciseService) GetMediaURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	if s.media == nil {
		return "", ErrStorageUnavailable
	}
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if exercise.MediaKey == "" {
		return "", ErrMediaNotFound
	}
	return s.media.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, storage.DefaultPresignedURLExpiry)
}
