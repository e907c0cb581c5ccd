package models

import "time"

// ScheduledRecipe asks for a recipe to be cooked for a meal on a date.
type ScheduledRecipe struct {
	RecipeName string `json:"recipeName"`
	Date       Date   `json:"date"`
	MealType   string `json:"mealType"`
}

// ScheduleRequest is the body of a scheduling call. TimeZone is an IANA
// zone name in which dates and meal times are interpreted.
type ScheduleRequest struct {
	ThisWeekRecipes []ScheduledRecipe `json:"thisWeekRecipes"`
	NextWeekRecipes []ScheduledRecipe `json:"nextWeekRecipes"`
	TimeZone        string            `json:"timeZone"`
}

// CalendarEvent is composed per request and only ever persisted by the
// calendar provider. Start and End are UTC.
type CalendarEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
	TimeZone    string
}
