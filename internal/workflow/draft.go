package workflow

import (
	"alcyxob/fitcoach/internal/domain"
	"strconv"
	"strings"
)

// Draft is the inline "new training" form.
type Draft struct {
	Name    string
	Notes   string
	Weekday domain.Weekday
	Number  string
}

// dayOfWeek validates the draft against the routine type and returns the
// value to store in day_of_week.
func (d Draft) dayOfWeek(rt domain.RoutineType) (string, error) {
	if strings.TrimSpace(d.Name) == "" {
		return "", ErrNameRequired
	}
	switch rt {
	case domain.RoutineTypeWeekday:
		if !d.Weekday.IsValid() {
			return "", ErrWeekdayRequired
		}
		return string(d.Weekday), nil
	case domain.RoutineTypeNumeric:
		n, err := strconv.Atoi(strings.TrimSpace(d.Number))
		if err != nil || n <= 0 {
			return "", ErrSequenceRequired
		}
		return domain.SequenceLabel(n), nil
	}
	if d.Weekday.IsValid() {
		return string(d.Weekday), nil
	}
	return "", nil
}

func validationMessage(err error) string {
	switch err {
	case ErrNameRequired:
		return "Informe o nome do treino."
	case ErrWeekdayRequired:
		return "Selecione o dia da semana do treino."
	case ErrSequenceRequired:
		return "Informe o número do treino."
	}
	return "Preencha os campos obrigatórios."
}
