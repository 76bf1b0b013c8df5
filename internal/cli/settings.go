package cli

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/workflow"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// setFlag is one --set exerciseID=repType[:load] value.
type setFlag struct {
	ExerciseID primitive.ObjectID
	RepType    domain.RepType
	Load       string
}

func parseSetFlag(v string) (setFlag, error) {
	id, rest, ok := strings.Cut(v, "=")
	if !ok {
		return setFlag{}, fmt.Errorf("invalid --set %q, expected exerciseID=repType[:load]", v)
	}
	exID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return setFlag{}, fmt.Errorf("invalid exercise id in --set %q", v)
	}
	repType, load, _ := strings.Cut(rest, ":")
	rt := domain.RepType(strings.TrimSpace(repType))
	if rt != "" && !rt.IsValid() {
		return setFlag{}, fmt.Errorf("unknown rep type %q in --set %q", rt, v)
	}
	if load != "" {
		if _, ok := workflow.ParseLoad(load); !ok {
			return setFlag{}, fmt.Errorf("invalid load %q in --set %q", load, v)
		}
	}
	return setFlag{ExerciseID: exID, RepType: rt, Load: strings.TrimSpace(load)}, nil
}

// applySets writes the flags onto the configuration rows of d.
func applySets(d *workflow.RoutineDetails, sets []setFlag) error {
	rows := d.Snapshot().Rows
	for _, s := range sets {
		idx := -1
		for i, row := range rows {
			if row.Preset.ExerciseID == s.ExerciseID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("exercise %s is not part of the selected training", s.ExerciseID.Hex())
		}
		if s.RepType != "" {
			if err := d.SetRepType(idx, s.RepType); err != nil {
				return err
			}
		}
		if err := d.SetLoadInput(idx, s.Load); err != nil {
			return err
		}
	}
	return nil
}

func formatLoad(load *float64) string {
	if load == nil {
		return "-"
	}
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", *load), "0"), ".") + " kg"
}
