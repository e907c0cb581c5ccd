package services

import (
	"context"

	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type eventComposer interface {
	ComposeEvents(ctx context.Context, userID string, thisWeek, nextWeek []models.ScheduledRecipe, timeZone string) ([]models.CalendarEvent, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, userID string, events []models.CalendarEvent) (int, error)
}

// Scheduler composes a request into events and publishes them, sequentially
// within the calling goroutine.
type Scheduler struct {
	composer  eventComposer
	publisher eventPublisher
	logger    logging.Logger
}

func NewScheduler(c eventComposer, p eventPublisher, logger logging.Logger) *Scheduler {
	return &Scheduler{composer: c, publisher: p, logger: logger.With("module", "scheduler")}
}

func (s *Scheduler) ScheduleRecipes(ctx context.Context, userID string, req *models.ScheduleRequest) error {
	events, err := s.composer.ComposeEvents(ctx, userID, req.ThisWeekRecipes, req.NextWeekRecipes, req.TimeZone)
	if err != nil {
		return err
	}

	n, err := s.publisher.Publish(ctx, userID, events)
	if err != nil {
		s.logger.Error(ctx, "schedule aborted", "user_id", userID, "published", n, "total", len(events), "error", err)
		return err
	}

	s.logger.Info(ctx, "recipes scheduled", "user_id", userID, "events", n)
	return nil
}
