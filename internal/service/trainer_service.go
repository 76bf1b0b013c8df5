package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrStudentNotFound        = errors.New("student user not found")
	ErrStudentNotRole         = errors.New("user found but is not a student")
	ErrStudentAlreadyAssigned = errors.New("student is already coached by another trainer")
	ErrStudentNotManaged      = errors.New("student is not managed by this trainer")
)

// TrainerService manages a trainer's student roster.
type TrainerService interface {
	AddStudentByEmail(ctx context.Context, trainerID primitive.ObjectID, email string) (*domain.User, error)
	GetStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo repository.UserRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(userRepo repository.UserRepository) TrainerService {
	return &trainerService{userRepo: userRepo}
}

// AddStudentByEmail finds a student by email and attaches them to the trainer.
func (s *trainerService) AddStudentByEmail(ctx context.Context, trainerID primitive.ObjectID, email string) (*domain.User, error) {
	// 1. Basic Input Validation
	if trainerID == primitive.NilObjectID || email == "" {
		return nil, errors.New("trainer ID and student email are required")
	}

	// 2. Find the student by email
	student, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	// 3. Check the user is a student and not coached by someone else
	if !student.IsStudent() {
		return nil, ErrStudentNotRole
	}

	if student.TrainerID != nil && *student.TrainerID != primitive.NilObjectID {
		if *student.TrainerID == trainerID {
			student.PasswordHash = ""
			return student, nil // Already ours, nothing to do
		}
		return nil, ErrStudentAlreadyAssigned
	}

	// 4. Link both sides
	if err = s.userRepo.AddStudentIDToTrainer(ctx, trainerID, student.ID); err != nil {
		return nil, err
	}
	// Not transactional: a failure here leaves the id on the trainer only,
	// and a retry of the same call repairs it.
	if err = s.userRepo.SetTrainerForStudent(ctx, student.ID, trainerID); err != nil {
		return nil, err
	}

	student.TrainerID = &trainerID
	student.PasswordHash = ""
	return student, nil
}

// GetStudents retrieves the students coached by the trainer.
func (s *trainerService) GetStudents(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID is required")
	}
	students, err := s.userRepo.GetStudentsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].PasswordHash = ""
	}
	return students, nil
}
