package common

// MealType names accepted in scheduling requests. Matching is exact and
// case-sensitive.
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
)

// CalendarScope is the OAuth scope requested when linking a calendar.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// PrimaryCalendarID addresses the authorized user's default calendar.
const PrimaryCalendarID = "primary"
