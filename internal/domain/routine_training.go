package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseSetting overrides the library defaults of one exercise for a
// single routine link. Load is only set for load-bearing rep types.
type ExerciseSetting struct {
	ExerciseID primitive.ObjectID `bson:"exerciseId" json:"exercise_id"`
	RepType    RepType            `bson:"repType,omitempty" json:"rep_type,omitempty"`
	Load       *float64           `bson:"load,omitempty" json:"load,omitempty"`
}

// RoutineTraining links a Training to a TrainingRoutine. Deleting the link
// never deletes the Training.
type RoutineTraining struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RoutineID        primitive.ObjectID `bson:"routineId" json:"routine_id"`
	TrainingID       primitive.ObjectID `bson:"trainingId" json:"training_id"`
	Order            int                `bson:"order" json:"order"` // 1-based position in the routine
	IsActive         bool               `bson:"isActive" json:"is_active"`
	ExerciseSettings []ExerciseSetting  `bson:"exerciseSettings,omitempty" json:"exercise_settings,omitempty"`
	TrainingName     string             `bson:"trainingName" json:"training_name"` // denormalized
	DayOfWeek        string             `bson:"dayOfWeek,omitempty" json:"day_of_week,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at"`
}

// NewRoutineTraining is the payload for creating a link.
type NewRoutineTraining struct {
	RoutineID        primitive.ObjectID `json:"routine_id"`
	TrainingID       primitive.ObjectID `json:"training_id"`
	Order            int                `json:"order"`
	IsActive         bool               `json:"is_active"`
	ExerciseSettings []ExerciseSetting  `json:"exercise_settings,omitempty"`
}

// ResolvedExercise is the effective prescription of one exercise for a link,
// after the link's overrides are merged onto the training defaults.
type ResolvedExercise struct {
	ExerciseID   primitive.ObjectID `json:"exercise_id"`
	ExerciseName string             `json:"exercise_name"`
	RepType      RepType            `json:"rep_type"`
	Load         *float64           `json:"load,omitempty"`
	Sets         int                `json:"sets"`
	Reps         string             `json:"reps,omitempty"`
	Time         string             `json:"time,omitempty"`
	Rest         string             `json:"rest,omitempty"`
}
