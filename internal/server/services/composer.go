package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/repomanager"
)

// RecipeFinder resolves a scheduled recipe name. *RecipeService satisfies it.
type RecipeFinder interface {
	FindByName(ctx context.Context, userID, name string) (*models.Recipe, error)
}

// EventComposer turns scheduled recipes into calendar events using the
// user's meal times and the recipes' cook times.
type EventComposer struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	recipes         RecipeFinder
	defaultCookTime time.Duration
	defaultTimeZone string
}

func NewEventComposer(db *sql.DB, m repomanager.RepositoryManager, recipes RecipeFinder, defaultCookTime time.Duration, defaultTimeZone string) *EventComposer {
	return &EventComposer{
		db:              db,
		repomanager:     m,
		recipes:         recipes,
		defaultCookTime: defaultCookTime,
		defaultTimeZone: defaultTimeZone,
	}
}

// ComposeEvents returns one event per item of thisWeek followed by nextWeek,
// in order. Each start is the item's date at the user's time for its meal,
// read in timeZone (or the default zone when empty) and converted to UTC.
// The end adds the cook time of the user's recipe with the same name, or
// the default cook time when there is none.
//
// Any meal type other than Breakfast, Lunch or Dinner fails the whole call
// with common.ErrInvalidMealType before anything else is looked up.
func (c *EventComposer) ComposeEvents(ctx context.Context, userID string, thisWeek, nextWeek []models.ScheduledRecipe, timeZone string) ([]models.CalendarEvent, error) {
	items := make([]models.ScheduledRecipe, 0, len(thisWeek)+len(nextWeek))
	items = append(items, thisWeek...)
	items = append(items, nextWeek...)

	var defaults models.MealTimes
	for i, it := range items {
		if _, ok := defaults.For(it.MealType); !ok {
			return nil, fmt.Errorf("%w: %q at position %d", common.ErrInvalidMealType, it.MealType, i)
		}
	}

	loc, zoneName, err := c.location(timeZone)
	if err != nil {
		return nil, err
	}

	user, err := c.repomanager.Users(c.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cookTimes := make(map[string]time.Duration)

	events := make([]models.CalendarEvent, 0, len(items))
	for _, it := range items {
		tod, _ := user.MealTimes.For(it.MealType)

		d, ok := cookTimes[it.RecipeName]
		if !ok {
			if d, err = c.cookTime(ctx, userID, it.RecipeName); err != nil {
				return nil, err
			}
			cookTimes[it.RecipeName] = d
		}

		start := it.Date.At(tod, loc).UTC()
		events = append(events, models.CalendarEvent{
			Title:       it.RecipeName,
			Start:       start,
			End:         start.Add(d),
			Description: "Scheduled meal: " + it.RecipeName,
			TimeZone:    zoneName,
		})
	}

	return events, nil
}

func (c *EventComposer) cookTime(ctx context.Context, userID, name string) (time.Duration, error) {
	r, err := c.recipes.FindByName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return c.defaultCookTime, nil
		}
		return 0, fmt.Errorf("recipe lookup: %w", err)
	}
	if r.CookTime <= 0 {
		return c.defaultCookTime, nil
	}
	return r.CookDuration(), nil
}

// location resolves the zone for a request. The returned name is suitable
// for the calendar's timeZone field and is empty for the server's local zone.
func (c *EventComposer) location(timeZone string) (*time.Location, string, error) {
	name := timeZone
	if name == "" {
		name = c.defaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", common.ErrInvalidTimeZone, name)
	}
	if name == "" || name == "Local" {
		return loc, "", nil
	}
	return loc, loc.String(), nil
}
