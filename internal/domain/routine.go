// internal/domain/routine.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoutineType decides which supplementary field a training created under the
// routine needs: a weekday or a sequence number.
type RoutineType string

const (
	RoutineTypeWeekday RoutineType = "Dia da semana"
	RoutineTypeNumeric RoutineType = "Numérico"
)

// TrainingRoutine is a coaching plan a trainer builds for one student.
// Trainings are attached to it through RoutineTraining links.
type TrainingRoutine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID    primitive.ObjectID `bson:"studentId" json:"student_id"`
	TrainerID    primitive.ObjectID `bson:"trainerId" json:"trainer_id"`
	Goal         string             `bson:"goal" json:"goal"`
	RoutineType  RoutineType        `bson:"routineType" json:"routine_type"`
	StartDate    time.Time          `bson:"startDate" json:"start_date"`
	EndDate      time.Time          `bson:"endDate" json:"end_date"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"`
	Instructions string             `bson:"instructions,omitempty" json:"instructions,omitempty"`
	StudentName  string             `bson:"studentName" json:"student_name"` // denormalized for display
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewRoutine is the payload for creating a routine.
type NewRoutine struct {
	StudentID    primitive.ObjectID `json:"student_id"`
	Goal         string             `json:"goal"`
	RoutineType  RoutineType        `json:"routine_type"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`
	Difficulty   string             `json:"difficulty"`
	Instructions string             `json:"instructions,omitempty"`
}
