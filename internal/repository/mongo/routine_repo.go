// internal/repository/mongo/routine_repo.go
package mongo

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const routineCollectionName = "training_routines"

// mongoRoutineRepository implements repository.RoutineRepository
type mongoRoutineRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineRepository creates a new TrainingRoutine repository.
func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

// Create inserts a new training routine.
func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.TrainingRoutine) (primitive.ObjectID, error) {
	if routine.StudentID == primitive.NilObjectID || routine.TrainerID == primitive.NilObjectID || routine.RoutineType == "" {
		return primitive.NilObjectID, errors.New("routine requires studentId, trainerId, and routineType")
	}
	routine.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	routine.CreatedAt = now
	routine.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a single routine by its ID.
func (r *mongoRoutineRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingRoutine, error) {
	var routine domain.TrainingRoutine
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// GetByTrainerID retrieves the trainer's routines, newest first.
func (r *mongoRoutineRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.TrainingRoutine, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID}, bson.D{{Key: "createdAt", Value: -1}})
}

// GetByStudentID retrieves the routines assigned to a student, newest first.
func (r *mongoRoutineRepository) GetByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.TrainingRoutine, error) {
	return r.find(ctx, bson.M{"studentId": studentID}, bson.D{{Key: "createdAt", Value: -1}})
}

// GetEndingBetween retrieves routines whose end date falls in [from, to).
func (r *mongoRoutineRepository) GetEndingBetween(ctx context.Context, from, to time.Time) ([]domain.TrainingRoutine, error) {
	filter := bson.M{"endDate": bson.M{"$gte": from, "$lt": to}}
	return r.find(ctx, filter, bson.D{{Key: "endDate", Value: 1}})
}

func (r *mongoRoutineRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]domain.TrainingRoutine, error) {
	var routines []domain.TrainingRoutine
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// Delete removes a routine owned by the trainer.
func (r *mongoRoutineRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || trainerID == primitive.NilObjectID {
		return errors.New("routine ID and trainer ID are required for deletion")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Either missing or owned by another trainer.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRoutineIndexes creates necessary indexes. Call during startup.
func EnsureRoutineIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}},
			Options: options.Index(),
		},
		{
			// Reminder job scans by end date
			Keys:    bson.D{{Key: "endDate", Value: 1}},
			Options: options.Index(),
		},
	})
}
