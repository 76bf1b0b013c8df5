package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrRoutineNotFound       = errors.New("routine not found")
	ErrRoutineAccessDenied   = errors.New("access denied to this routine")
	ErrRoutineInvalid        = errors.New("routine requires goal, type and a start date before the end date")
	ErrLinkNotFound          = errors.New("routine training not found")
	ErrTrainingAlreadyLinked = errors.New("training is already linked to this routine")
	ErrInvalidOrder          = errors.New("order must be 1 or greater")
)

// --- Service Interface ---

// RoutineService manages routines, their training links and the exercises
// a link resolves to.
type RoutineService interface {
	CreateRoutine(ctx context.Context, trainerID primitive.ObjectID, in domain.NewRoutine) (*domain.TrainingRoutine, error)
	GetRoutine(ctx context.Context, userID primitive.ObjectID, routineID primitive.ObjectID) (*domain.TrainingRoutine, error)
	ListRoutines(ctx context.Context, userID primitive.ObjectID, role domain.Role) ([]domain.TrainingRoutine, error)
	DeleteRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) error

	ListRoutineTrainings(ctx context.Context, userID, routineID primitive.ObjectID) ([]domain.RoutineTraining, error)
	CreateRoutineTraining(ctx context.Context, trainerID primitive.ObjectID, in domain.NewRoutineTraining) (*domain.RoutineTraining, error)
	DeleteRoutineTraining(ctx context.Context, trainerID, linkID primitive.ObjectID) error
	ResolveExercises(ctx context.Context, userID, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error)
}

// --- Service Implementation ---

type routineService struct {
	userRepo             repository.UserRepository
	routineRepo          repository.RoutineRepository
	trainingRepo         repository.TrainingRepository
	linkRepo             repository.RoutineTrainingRepository
	exerciseTrainingRepo repository.ExerciseTrainingRepository
	publisher            Publisher
}

// NewRoutineService creates a new instance of routineService. publisher may be nil.
func NewRoutineService(
	userRepo repository.UserRepository,
	routineRepo repository.RoutineRepository,
	trainingRepo repository.TrainingRepository,
	linkRepo repository.RoutineTrainingRepository,
	exerciseTrainingRepo repository.ExerciseTrainingRepository,
	publisher Publisher,
) RoutineService {
	return &routineService{
		userRepo:             userRepo,
		routineRepo:          routineRepo,
		trainingRepo:         trainingRepo,
		linkRepo:             linkRepo,
		exerciseTrainingRepo: exerciseTrainingRepo,
		publisher:            publisher,
	}
}

// === Routines ===

// CreateRoutine builds a routine for one of the trainer's students.
func (s *routineService) CreateRoutine(ctx context.Context, trainerID primitive.ObjectID, in domain.NewRoutine) (*domain.TrainingRoutine, error) {
	if strings.TrimSpace(in.Goal) == "" || strings.TrimSpace(string(in.RoutineType)) == "" ||
		in.StartDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return nil, ErrRoutineInvalid
	}

	student, err := s.userRepo.GetByID(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if !student.IsStudent() {
		return nil, ErrStudentNotRole
	}
	if student.TrainerID == nil || *student.TrainerID != trainerID {
		return nil, ErrStudentNotManaged
	}

	routine := &domain.TrainingRoutine{
		StudentID:    student.ID,
		TrainerID:    trainerID,
		Goal:         strings.TrimSpace(in.Goal),
		RoutineType:  in.RoutineType,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Difficulty:   in.Difficulty,
		Instructions: in.Instructions,
		StudentName:  student.Name,
	}
	id, err := s.routineRepo.Create(ctx, routine)
	if err != nil {
		return nil, err
	}
	routine.ID = id
	return routine, nil
}

// GetRoutine returns a routine visible to userID: its trainer or its student.
func (s *routineService) GetRoutine(ctx context.Context, userID, routineID primitive.ObjectID) (*domain.TrainingRoutine, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.TrainerID != userID && routine.StudentID != userID {
		return nil, ErrRoutineAccessDenied
	}
	return routine, nil
}

// ListRoutines lists the trainer's own routines, or the routines assigned to a student.
func (s *routineService) ListRoutines(ctx context.Context, userID primitive.ObjectID, role domain.Role) ([]domain.TrainingRoutine, error) {
	switch role {
	case domain.RoleTrainer:
		return s.routineRepo.GetByTrainerID(ctx, userID)
	case domain.RoleStudent:
		return s.routineRepo.GetByStudentID(ctx, userID)
	}
	return nil, ErrInvalidRole
}

// DeleteRoutine removes the routine and all of its links. Trainings stay in the library.
func (s *routineService) DeleteRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) error {
	routine, err := s.ownedRoutine(ctx, trainerID, routineID)
	if err != nil {
		return err
	}

	if err := s.routineRepo.Delete(ctx, routineID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRoutineNotFound
		}
		return err
	}
	removed, err := s.linkRepo.DeleteByRoutineID(ctx, routineID)
	if err != nil {
		// The routine is gone; dangling links are unreachable through the API.
		log.Printf("ERROR: Routine %s deleted but its links were not: %v", routineID.Hex(), err)
	} else if removed > 0 {
		log.Printf("INFO: Routine %s deleted with %d linked trainings", routineID.Hex(), removed)
	}

	publish(ctx, s.publisher, routine.StudentID, newNotification(
		domain.NotificationRoutineDeleted,
		"Rotina removida",
		fmt.Sprintf("A rotina %q foi removida pelo seu treinador.", routine.Goal),
		map[string]string{"routine_id": routineID.Hex()},
	))
	return nil
}

func (s *routineService) ownedRoutine(ctx context.Context, trainerID, routineID primitive.ObjectID) (*domain.TrainingRoutine, error) {
	routine, err := s.routineRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, err
	}
	if routine.TrainerID != trainerID {
		return nil, ErrRoutineAccessDenied
	}
	return routine, nil
}

// === Routine trainings ===

// ListRoutineTrainings returns the links of a routine ordered by position.
func (s *routineService) ListRoutineTrainings(ctx context.Context, userID, routineID primitive.ObjectID) ([]domain.RoutineTraining, error) {
	if _, err := s.GetRoutine(ctx, userID, routineID); err != nil {
		return nil, err
	}
	return s.linkRepo.GetByRoutineID(ctx, routineID)
}

// CreateRoutineTraining links a training to a routine. Display fields are
// copied from the training and loads on non load-bearing settings are dropped.
func (s *routineService) CreateRoutineTraining(ctx context.Context, trainerID primitive.ObjectID, in domain.NewRoutineTraining) (*domain.RoutineTraining, error) {
	// 1. Validate the payload
	if in.Order < 1 {
		return nil, ErrInvalidOrder
	}
	settings, err := SanitizeSettings(in.ExerciseSettings)
	if err != nil {
		return nil, err
	}

	// 2. Verify the trainer owns both the routine and the training
	routine, err := s.ownedRoutine(ctx, trainerID, in.RoutineID)
	if err != nil {
		return nil, err
	}

	training, err := s.trainingRepo.GetByID(ctx, in.TrainingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTrainingNotFound
		}
		return nil, err
	}
	if training.TrainerID != trainerID {
		return nil, ErrTrainingAccessDenied
	}

	// 3. Create the link with the training's display fields copied in
	link := &domain.RoutineTraining{
		RoutineID:        routine.ID,
		TrainingID:       training.ID,
		Order:            in.Order,
		IsActive:         in.IsActive,
		ExerciseSettings: settings,
		TrainingName:     training.Name,
		DayOfWeek:        training.DayOfWeek,
	}
	id, err := s.linkRepo.Create(ctx, link)
	if err != nil {
		// Unique (routine_id, training_id) index
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTrainingAlreadyLinked
		}
		return nil, err
	}
	link.ID = id

	// 4. Let the student know
	publish(ctx, s.publisher, routine.StudentID, newNotification(
		domain.NotificationTrainingLinked,
		"Novo treino",
		fmt.Sprintf("%s foi adicionado à rotina %q.", training.Name, routine.Goal),
		map[string]string{"routine_id": routine.ID.Hex(), "routine_training_id": id.Hex()},
	))
	return link, nil
}

// DeleteRoutineTraining removes a link. The training itself is kept.
func (s *routineService) DeleteRoutineTraining(ctx context.Context, trainerID, linkID primitive.ObjectID) error {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return err
	}
	routine, err := s.ownedRoutine(ctx, trainerID, link.RoutineID)
	if err != nil {
		return err
	}

	if err := s.linkRepo.Delete(ctx, linkID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLinkNotFound
		}
		return err
	}

	publish(ctx, s.publisher, routine.StudentID, newNotification(
		domain.NotificationTrainingUnlinked,
		"Treino removido",
		fmt.Sprintf("%s foi removido da rotina %q.", link.TrainingName, routine.Goal),
		map[string]string{"routine_id": routine.ID.Hex()},
	))
	return nil
}

// ResolveExercises returns the effective exercise list of a link.
func (s *routineService) ResolveExercises(ctx context.Context, userID, linkID primitive.ObjectID) ([]domain.ResolvedExercise, error) {
	link, err := s.linkRepo.GetByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	// Access follows the routine: its trainer or its student
	if _, err := s.GetRoutine(ctx, userID, link.RoutineID); err != nil {
		return nil, err
	}

	defaults, err := s.exerciseTrainingRepo.GetByTrainingID(ctx, link.TrainingID)
	if err != nil {
		return nil, err
	}
	return MergeExerciseSettings(defaults, link.ExerciseSettings), nil
}

// SanitizeSettings validates rep types and drops loads that the effective
// rep type cannot carry. A setting without a rep type keeps its load; the
// merge decides later against the default rep type.
func SanitizeSettings(in []domain.ExerciseSetting) ([]domain.ExerciseSetting, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]domain.ExerciseSetting, 0, len(in))
	for _, setting := range in {
		if setting.ExerciseID == primitive.NilObjectID {
			return nil, fmt.Errorf("exercise setting without exercise_id: %w", ErrValidationFailed)
		}
		if setting.RepType != "" && !setting.RepType.IsValid() {
			return nil, ErrInvalidRepType
		}
		if setting.Load != nil && (math.IsNaN(*setting.Load) || math.IsInf(*setting.Load, 0)) {
			setting.Load = nil
		}
		if setting.RepType != "" && !setting.RepType.IsLoadBearing() {
			setting.Load = nil
		}
		out = append(out, setting)
	}
	return out, nil
}

// MergeExerciseSettings applies link overrides onto training defaults. The
// result is never nil.
func MergeExerciseSettings(defaults []domain.ExerciseTraining, settings []domain.ExerciseSetting) []domain.ResolvedExercise {
	overrides := make(map[primitive.ObjectID]domain.ExerciseSetting, len(settings))
	for _, setting := range settings {
		overrides[setting.ExerciseID] = setting
	}

	resolved := make([]domain.ResolvedExercise, 0, len(defaults))
	for _, et := range defaults {
		r := domain.ResolvedExercise{
			ExerciseID:   et.ExerciseID,
			ExerciseName: et.ExerciseName,
			RepType:      et.RepType,
			Load:         et.DefaultLoad,
			Sets:         et.Sets,
			Reps:         et.Reps,
			Time:         et.Time,
			Rest:         et.Rest,
		}
		if o, ok := overrides[et.ExerciseID]; ok {
			if o.RepType != "" {
				r.RepType = o.RepType
			}
			if o.Load != nil {
				r.Load = o.Load
			}
		}
		if !r.RepType.IsLoadBearing() {
			r.Load = nil
		}
		resolved = append(resolved, r)
	}
	return resolved
}
