// Package models holds the wire shapes the CLI exchanges with the meal
// planner API. Dates and times stay strings; the server validates them.
package models

import "time"

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	MealTimes MealTimes `json:"mealTimes"`
	CreatedAt time.Time `json:"createdAt"`
}

// MealTimes are "HH:MM" strings.
type MealTimes struct {
	Breakfast string `json:"breakfastTime"`
	Lunch     string `json:"lunchTime"`
	Dinner    string `json:"dinnerTime"`
}

type Ingredient struct {
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	Unit          string  `json:"unit"`
	Calories      int     `json:"calories"`
	Fat           int     `json:"fat"`
	Protein       int     `json:"protein"`
	Carbohydrates int     `json:"carbohydrates"`
	EstimatedCost int     `json:"estimatedCost"`
}

// Recipe totals are computed by the server from the ingredients.
type Recipe struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	CookTime      int          `json:"cookTime"`
	ImageKey      string       `json:"imageKey,omitempty"`
	Ingredients   []Ingredient `json:"ingredients,omitempty"`
	Calories      int          `json:"calories"`
	Fat           int          `json:"fat"`
	Protein       int          `json:"protein"`
	EstimatedCost int          `json:"estimatedCost"`
	CreatedAt     time.Time    `json:"createdAt"`
}

type ScheduledRecipe struct {
	RecipeName string `json:"recipeName"`
	Date       string `json:"date"`
	MealType   string `json:"mealType"`
}

type ScheduleRequest struct {
	ThisWeekRecipes []ScheduledRecipe `json:"thisWeekRecipes"`
	NextWeekRecipes []ScheduledRecipe `json:"nextWeekRecipes"`
	TimeZone        string            `json:"timeZone,omitempty"`
}

// ImageUpload is a presigned URL the image bytes are PUT to.
type ImageUpload struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}
