package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ConfigRow is one exercise being configured before a link is created.
// Preset holds the training defaults; RepType and LoadInput are the edits.
type ConfigRow struct {
	Preset    domain.ExerciseTraining
	RepType   domain.RepType
	LoadInput string
}

func newConfigRows(defaults []domain.ExerciseTraining) []ConfigRow {
	rows := make([]ConfigRow, 0, len(defaults))
	for _, et := range defaults {
		rows = append(rows, ConfigRow{Preset: et, RepType: et.RepType})
	}
	return rows
}

// plainDecimal matches the load text a user can type: digits with an
// optional fraction, no exponent or hex form.
var plainDecimal = regexp.MustCompile(`^[+-]?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)$`)

// ParseLoad reads a load typed by the user. Both "22.5" and "22,5" are
// accepted; anything that is not plain decimal text is rejected.
func ParseLoad(input string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	if !plainDecimal.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BuildExerciseSettings turns configuration rows into the link payload.
// A row without a rep type is left out. A load is only sent for a
// load-bearing rep type with a parseable input.
func BuildExerciseSettings(rows []ConfigRow) []domain.ExerciseSetting {
	var settings []domain.ExerciseSetting
	for _, row := range rows {
		if row.RepType == "" {
			continue
		}
		setting := domain.ExerciseSetting{
			ExerciseID: row.Preset.ExerciseID,
			RepType:    row.RepType,
		}
		if row.RepType.IsLoadBearing() {
			if v, ok := ParseLoad(row.LoadInput); ok {
				setting.Load = &v
			}
		}
		settings = append(settings, setting)
	}
	return settings
}
