package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
)

// TimeOfDay is an offset from midnight in whole minutes, in [0, 1440).
type TimeOfDay int

const minutesPerDay = 24 * 60

// NewTimeOfDay returns hh:mm as a TimeOfDay.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "15:04" or "15:04:05" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("%w: time of day %q", common.ErrValidation, s)
}

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t) * time.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MealTimes holds the user's preferred time of day for each meal.
type MealTimes struct {
	Breakfast TimeOfDay `json:"breakfastTime"`
	Lunch     TimeOfDay `json:"lunchTime"`
	Dinner    TimeOfDay `json:"dinnerTime"`
}

// DefaultMealTimes are assigned to new users.
func DefaultMealTimes() MealTimes {
	return MealTimes{
		Breakfast: NewTimeOfDay(8, 0),
		Lunch:     NewTimeOfDay(12, 0),
		Dinner:    NewTimeOfDay(18, 0),
	}
}

// For resolves a meal type name. Matching is exact and case-sensitive.
func (m MealTimes) For(mealType string) (TimeOfDay, bool) {
	switch mealType {
	case common.MealBreakfast:
		return m.Breakfast, true
	case common.MealLunch:
		return m.Lunch, true
	case common.MealDinner:
		return m.Dinner, true
	}
	return 0, false
}

func (m MealTimes) Validate() error {
	for _, t := range []TimeOfDay{m.Breakfast, m.Lunch, m.Dinner} {
		if !t.Valid() {
			return fmt.Errorf("%w: time of day out of range", common.ErrValidation)
		}
	}
	return nil
}
