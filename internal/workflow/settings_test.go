package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildExerciseSettings(t *testing.T) {
	ex := primitive.NewObjectID()
	row := func(rt domain.RepType, input string) []ConfigRow {
		return []ConfigRow{{Preset: domain.ExerciseTraining{ExerciseID: ex}, RepType: rt, LoadInput: input}}
	}
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		rows []ConfigRow
		want []domain.ExerciseSetting
	}{
		{"reps-time never carries load", row(domain.RepTypeRepsTime, "30"), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeRepsTime}}},
		{"reps-load with number", row(domain.RepTypeRepsLoad, "30"), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeRepsLoad, Load: f(30)}}},
		{"unparseable load keeps rep type", row(domain.RepTypeCompleteSet, "abc"), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeCompleteSet}}},
		{"comma decimal", row(domain.RepTypeRepsLoadTime, "22,5"), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeRepsLoadTime, Load: f(22.5)}}},
		{"empty load", row(domain.RepTypeRepsLoad, ""), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeRepsLoad}}},
		{"infinite load", row(domain.RepTypeRepsLoad, "Inf"), []domain.ExerciseSetting{{ExerciseID: ex, RepType: domain.RepTypeRepsLoad}}},
		{"no rep type sends nothing", row("", "30"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildExerciseSettings(tt.rows))
		})
	}
}

func TestBuildExerciseSettings_RowsAreIndependent(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	settings := BuildExerciseSettings([]ConfigRow{
		{Preset: domain.ExerciseTraining{ExerciseID: a}, RepType: domain.RepTypeRepsTime, LoadInput: "10"},
		{Preset: domain.ExerciseTraining{ExerciseID: b}, RepType: domain.RepTypeRepsLoad, LoadInput: "10"},
	})
	assert.Len(t, settings, 2)
	assert.Nil(t, settings[0].Load)
	assert.Equal(t, 10.0, *settings[1].Load)
}

func TestParseLoad(t *testing.T) {
	v, ok := ParseLoad(" 12.5 ")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	v, ok = ParseLoad("22,5")
	assert.True(t, ok)
	assert.Equal(t, 22.5, v)

	for _, bad := range []string{"", "NaN", "-Inf", "1e400", "12kg", "0x1p4", "1_000", "1e2", "1.2.3", "."} {
		_, ok := ParseLoad(bad)
		assert.False(t, ok, bad)
	}
}
