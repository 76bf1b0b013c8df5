// Package catalog reads trainer-authored training libraries from TOML.
//
//	[[training]]
//	name = "Superiores A"
//	day_of_week = "Segunda"
//
//	  [[training.exercise]]
//	  name = "Supino reto"
//	  rep_type = "reps-load"
//	  default_load = 40.0
//	  sets = 4
//	  reps = "8-12"
//	  rest = "90s"
package catalog

import (
	"alcyxob/fitcoach/internal/domain"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

type File struct {
	Trainings []TrainingTOML `toml:"training"`
}

type TrainingTOML struct {
	Name      string         `toml:"name"`
	Notes     string         `toml:"notes,omitempty"`
	DayOfWeek string         `toml:"day_of_week,omitempty"`
	Exercises []ExerciseTOML `toml:"exercise"`
}

type ExerciseTOML struct {
	Name        string   `toml:"name"`
	MuscleGroup string   `toml:"muscle_group,omitempty"`
	RepType     string   `toml:"rep_type"`
	DefaultLoad *float64 `toml:"default_load,omitempty"`
	Sets        int      `toml:"sets"`
	Reps        string   `toml:"reps,omitempty"`
	Time        string   `toml:"time,omitempty"`
	Rest        string   `toml:"rest,omitempty"`
}

// ValidationError lists every problem found in a file.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid library file:\n  " + strings.Join(e.Problems, "\n  ")
}

var sequenceLabel = regexp.MustCompile(`^Treino [1-9][0-9]*$`)

// Parse decodes and validates a library file.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse library file: %w", err)
	}

	v := &ValidationError{}
	for _, key := range md.Undecoded() {
		v.Problems = append(v.Problems, fmt.Sprintf("unknown key %q", key.String()))
	}
	if len(f.Trainings) == 0 {
		v.Problems = append(v.Problems, "no [[training]] entries")
	}

	seen := map[string]bool{}
	for i, t := range f.Trainings {
		where := fmt.Sprintf("training #%d", i+1)
		name := strings.TrimSpace(t.Name)
		if name == "" {
			v.Problems = append(v.Problems, where+": name is required")
		} else {
			where = fmt.Sprintf("training %q", name)
			if seen[strings.ToLower(name)] {
				v.Problems = append(v.Problems, where+": duplicate name")
			}
			seen[strings.ToLower(name)] = true
		}
		if t.DayOfWeek != "" && !domain.Weekday(t.DayOfWeek).IsValid() && !sequenceLabel.MatchString(t.DayOfWeek) {
			v.Problems = append(v.Problems, fmt.Sprintf("%s: day_of_week %q is neither a weekday nor \"Treino N\"", where, t.DayOfWeek))
		}
		if len(t.Exercises) == 0 {
			v.Problems = append(v.Problems, where+": no exercises")
		}
		for j, ex := range t.Exercises {
			exWhere := fmt.Sprintf("%s exercise #%d", where, j+1)
			if strings.TrimSpace(ex.Name) == "" {
				v.Problems = append(v.Problems, exWhere+": name is required")
			}
			rt := domain.RepType(ex.RepType)
			if !rt.IsValid() {
				v.Problems = append(v.Problems, fmt.Sprintf("%s: unknown rep_type %q", exWhere, ex.RepType))
			} else if ex.DefaultLoad != nil && !rt.IsLoadBearing() {
				v.Problems = append(v.Problems, fmt.Sprintf("%s: %s does not take a default_load", exWhere, rt))
			}
			if ex.Sets <= 0 {
				v.Problems = append(v.Problems, exWhere+": sets must be positive")
			}
		}
	}

	if len(v.Problems) > 0 {
		return nil, v
	}
	return &f, nil
}
