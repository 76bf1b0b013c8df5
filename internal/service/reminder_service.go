package service

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/repository"
	"context"
	"fmt"
	"log"
	"time"
)

// ReminderService warns students and trainers about routines that are about to end.
type ReminderService interface {
	// SendEndingReminders notifies both parties of every routine whose end
	// date falls within window of now. It returns the number of routines found.
	SendEndingReminders(ctx context.Context, now time.Time, window time.Duration) (int, error)
}

type reminderService struct {
	routineRepo repository.RoutineRepository
	publisher   Publisher
}

func NewReminderService(routineRepo repository.RoutineRepository, publisher Publisher) ReminderService {
	return &reminderService{routineRepo: routineRepo, publisher: publisher}
}

func (s *reminderService) SendEndingReminders(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	routines, err := s.routineRepo.GetEndingBetween(ctx, now, now.Add(window))
	if err != nil {
		log.Printf("ERROR: Failed to query routines ending before %s: %v", now.Add(window).Format(time.DateOnly), err)
		return 0, fmt.Errorf("failed to load ending routines: %w", err)
	}

	for _, rt := range routines {
		days := int(rt.EndDate.Sub(now).Hours() / 24)
		data := map[string]string{
			"routine_id": rt.ID.Hex(),
			"end_date":   rt.EndDate.Format(time.DateOnly),
		}
		body := fmt.Sprintf("A rotina \"%s\" termina em %s.", rt.Goal, rt.EndDate.Format("02/01/2006"))
		if days < 1 {
			body = fmt.Sprintf("A rotina \"%s\" termina hoje.", rt.Goal)
		}

		publish(ctx, s.publisher, rt.StudentID,
			newNotification(domain.NotificationRoutineEnding, "Rotina terminando", body, data))
		publish(ctx, s.publisher, rt.TrainerID,
			newNotification(domain.NotificationRoutineEnding, "Rotina de "+rt.StudentName+" terminando", body, data))
	}
	log.Printf("INFO: Sent ending reminders for %d routines", len(routines))
	return len(routines), nil
}
