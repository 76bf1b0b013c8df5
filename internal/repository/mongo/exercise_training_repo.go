package mongo

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseTrainingCollectionName = "exercise_trainings"

// mongoExerciseTrainingRepository implements repository.ExerciseTrainingRepository
type mongoExerciseTrainingRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseTrainingRepository creates a new repository for exercise defaults.
func NewMongoExerciseTrainingRepository(db *mongo.Database) repository.ExerciseTrainingRepository {
	return &mongoExerciseTrainingRepository{
		collection: db.Collection(exerciseTrainingCollectionName),
	}
}

// Create inserts the defaults of one exercise within a training.
func (r *mongoExerciseTrainingRepository) Create(ctx context.Context, et *domain.ExerciseTraining) (primitive.ObjectID, error) {
	if et.TrainingID == primitive.NilObjectID || et.ExerciseID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("exercise training requires trainingId and exerciseId")
	}
	et.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, et)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return insertedObjectID(result)
}

// GetByTrainingID retrieves the exercise defaults of a training in order.
func (r *mongoExerciseTrainingRepository) GetByTrainingID(ctx context.Context, trainingID primitive.ObjectID) ([]domain.ExerciseTraining, error) {
	var rows []domain.ExerciseTraining
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"trainingId": trainingID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteByTrainingID removes every exercise default of a training.
func (r *mongoExerciseTrainingRepository) DeleteByTrainingID(ctx context.Context, trainingID primitive.ObjectID) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"trainingId": trainingID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// EnsureExerciseTrainingIndexes creates necessary indexes.
func EnsureExerciseTrainingIndexes(ctx context.Context, collection *mongo.Collection) {
	createIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainingId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	})
}
