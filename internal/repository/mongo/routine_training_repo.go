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

const routineTrainingCollectionName = "routine_trainings"

// mongoRoutineTrainingRepository implements repository.RoutineTrainingRepository
type mongoRoutineTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoRoutineTrainingRepository creates a new link repository backed by MongoDB.
func NewMongoRoutineTrainingRepository(db *mongo.Database) repository.RoutineTrainingRepository {
	return &mongoRoutineTrainingRepository{
		collection: db.Collection(routineTrainingCollectionName),
	}
}

// Create inserts a new routine/training link.
func (r *mongoRoutineTrainingRepository) Create(ctx context.Context, link *domain.RoutineTraining) (primitive.ObjectID, error) {
	if link.RoutineID == primitive.NilObjectID || link.TrainingID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("link requires routineId and trainingId")
	}

	link.ID = primitive.NewObjectID()
	link.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, link)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByID retrieves a link by its ID.
func (r *mongoRoutineTrainingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RoutineTraining, error) {
	var link domain.RoutineTraining
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&link)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// GetByRoutineID retrieves all links of a routine ordered by position.
func (r *mongoRoutineTrainingRepository) GetByRoutineID(ctx context.Context, routineID primitive.ObjectID) ([]domain.RoutineTraining, error) {
	var links []domain.RoutineTraining
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"routineId": routineID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// CountByTrainingID reports how many routines link the training.
func (r *mongoRoutineTrainingRepository) CountByTrainingID(ctx context.Context, trainingID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"trainingId": trainingID})
}

// Delete removes a single link. The linked training is left untouched.
func (r *mongoRoutineTrainingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByRoutineID removes every link of a routine.
func (r *mongoRoutineTrainingRepository) DeleteByRoutineID(ctx context.Context, routineID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"routineId": routineID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureRoutineTrainingIndexes creates necessary indexes for the links collection.
func EnsureRoutineTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			// A training is linked at most once per routine
			Keys:    bson.D{{Key: "routineId", Value: 1}, {Key: "trainingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "routineId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "trainingId", Value: 1}},
			Options: options.Index(),
		},
	})
}
