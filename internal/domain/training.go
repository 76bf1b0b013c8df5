package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Weekday is the label stored in Training.DayOfWeek for weekday-based routines.
type Weekday string

const (
	Monday    Weekday = "Segunda"
	Tuesday   Weekday = "Terça"
	Wednesday Weekday = "Quarta"
	Thursday  Weekday = "Quinta"
	Friday    Weekday = "Sexta"
	Saturday  Weekday = "Sábado"
	Sunday    Weekday = "Domingo"
)

// Weekdays lists the accepted values in week order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid reports whether w is one of Weekdays.
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// SequenceLabel encodes the n-th training of a numeric routine into the
// day_of_week field ("Treino 3"). The field carries both concepts on the wire.
func SequenceLabel(n int) string {
	return fmt.Sprintf("Treino %d", n)
}

// Training is a reusable workout definition. Library trainings can be linked
// to any number of routines.
type Training struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DayOfWeek string             `bson:"dayOfWeek,omitempty" json:"day_of_week,omitempty"`
	TrainerID primitive.ObjectID `bson:"trainerId" json:"trainer_id"`
	IsLibrary bool               `bson:"isLibrary" json:"is_library"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// NewTraining is the payload for creating a training.
type NewTraining struct {
	Name      string             `json:"name"`
	Notes     string             `json:"notes,omitempty"`
	DayOfWeek string             `json:"day_of_week,omitempty"`
	TrainerID primitive.ObjectID `json:"trainer_id"`
	IsLibrary bool               `json:"is_library"`
}
