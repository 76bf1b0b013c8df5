// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RepType describes how the sets of an exercise are prescribed.
type RepType string

const (
	RepTypeRepsLoad     RepType = "reps-load"
	RepTypeRepsLoadTime RepType = "reps-load-time"
	RepTypeCompleteSet  RepType = "complete-set"
	RepTypeRepsTime     RepType = "reps-time"
)

// RepTypes lists every known rep type.
var RepTypes = []RepType{RepTypeRepsLoad, RepTypeRepsLoadTime, RepTypeCompleteSet, RepTypeRepsTime}

// IsValid reports whether t is a known rep type.
func (t RepType) IsValid() bool {
	for _, known := range RepTypes {
		if known == t {
			return true
		}
	}
	return false
}

// IsLoadBearing reports whether a load value is meaningful for t.
// reps-time prescriptions never carry a load.
func (t RepType) IsLoadBearing() bool {
	switch t {
	case RepTypeRepsLoad, RepTypeRepsLoadTime, RepTypeCompleteSet:
		return true
	}
	return false
}

// Exercise represents a single exercise definition in the trainer's catalog.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainerID   primitive.ObjectID `bson:"trainerId" json:"trainer_id"` // Trainer who created/owns this exercise
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroup string             `bson:"muscleGroup,omitempty" json:"muscle_group,omitempty"` // e.g., "Peito", "Pernas"
	Difficulty  string             `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	MediaKey    string             `bson:"mediaKey,omitempty" json:"-"` // object key of the demo video, internal use
	HasMedia    bool               `bson:"-" json:"has_media"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewExercise is the payload for creating a catalog exercise.
type NewExercise struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MuscleGroup string `json:"muscle_group,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

// ExerciseTraining is the library-level default configuration of one
// exercise inside a Training. Routine links may override RepType and load.
type ExerciseTraining struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingID   primitive.ObjectID `bson:"trainingId" json:"training_id"`
	ExerciseID   primitive.ObjectID `bson:"exerciseId" json:"exercise_id"`
	ExerciseName string             `bson:"exerciseName" json:"exercise_name"`
	RepType      RepType            `bson:"repType" json:"rep_type"`
	DefaultLoad  *float64           `bson:"defaultLoad,omitempty" json:"default_load,omitempty"`
	Sets         int                `bson:"sets" json:"sets"`
	Reps         string             `bson:"reps,omitempty" json:"reps,omitempty"` // e.g., "10", "8-12"
	Time         string             `bson:"time,omitempty" json:"time,omitempty"` // e.g., "30s"
	Rest         string             `bson:"rest,omitempty" json:"rest,omitempty"` // e.g., "60s"
	Order        int                `bson:"order" json:"order"`
}

// NewExerciseTraining is the payload for adding exercise defaults to a training.
type NewExerciseTraining struct {
	ExerciseID  primitive.ObjectID `json:"exercise_id"`
	RepType     RepType            `json:"rep_type"`
	DefaultLoad *float64           `json:"default_load,omitempty"`
	Sets        int                `json:"sets"`
	Reps        string             `json:"reps,omitempty"`
	Time        string             `json:"time,omitempty"`
	Rest        string             `json:"rest,omitempty"`
}
