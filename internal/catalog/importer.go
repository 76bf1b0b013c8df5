package catalog

import (
	"alcyxob/fitcoach/internal/domain"
	"context"
	"fmt"
	"log"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// API is the part of the server contract the importer needs.
type API interface {
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	CreateExercise(ctx context.Context, in domain.NewExercise) (*domain.Exercise, error)
	CreateTraining(ctx context.Context, in domain.NewTraining) (*domain.Training, error)
	AddExerciseDefault(ctx context.Context, trainingID primitive.ObjectID, in domain.NewExerciseTraining) (*domain.ExerciseTraining, error)
}

// Result summarises an import.
type Result struct {
	Trainings        []domain.Training
	CreatedExercises []string
}

// Importer creates library trainings for one trainer.
type Importer struct {
	api       API
	trainerID primitive.ObjectID
}

func NewImporter(api API, trainerID primitive.ObjectID) *Importer {
	return &Importer{api: api, trainerID: trainerID}
}

// Import creates every training of f as a library training. Exercises are
// matched by name, case-insensitively, and created when missing. Import stops
// at the first failure; every training already created, including one whose
// exercise defaults failed, is kept and reported.
func (im *Importer) Import(ctx context.Context, f *File) (*Result, error) {
	existing, err := im.api.ListExercises(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	byName := make(map[string]primitive.ObjectID, len(existing))
	for _, ex := range existing {
		byName[nameKey(ex.Name)] = ex.ID
	}

	res := &Result{}
	for _, t := range f.Trainings {
		for _, ex := range t.Exercises {
			if _, ok := byName[nameKey(ex.Name)]; ok {
				continue
			}
			created, err := im.api.CreateExercise(ctx, domain.NewExercise{
				Name:        strings.TrimSpace(ex.Name),
				MuscleGroup: ex.MuscleGroup,
			})
			if err != nil {
				return res, fmt.Errorf("failed to create exercise %q: %w", ex.Name, err)
			}
			byName[nameKey(ex.Name)] = created.ID
			res.CreatedExercises = append(res.CreatedExercises, created.Name)
		}

		training, err := im.api.CreateTraining(ctx, domain.NewTraining{
			Name:      strings.TrimSpace(t.Name),
			Notes:     t.Notes,
			DayOfWeek: t.DayOfWeek,
			TrainerID: im.trainerID,
			IsLibrary: true,
		})
		if err != nil {
			return res, fmt.Errorf("failed to create training %q: %w", t.Name, err)
		}
		// Reported even if its defaults fail below: it exists on the server.
		res.Trainings = append(res.Trainings, *training)

		for _, ex := range t.Exercises {
			_, err := im.api.AddExerciseDefault(ctx, training.ID, domain.NewExerciseTraining{
				ExerciseID:  byName[nameKey(ex.Name)],
				RepType:     domain.RepType(ex.RepType),
				DefaultLoad: ex.DefaultLoad,
				Sets:        ex.Sets,
				Reps:        ex.Reps,
				Time:        ex.Time,
				Rest:        ex.Rest,
			})
			if err != nil {
				return res, fmt.Errorf("failed to add %q to training %q: %w", ex.Name, t.Name, err)
			}
		}
		log.Printf("INFO: Imported training %q with %d exercises", training.Name, len(t.Exercises))
	}
	return res, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
