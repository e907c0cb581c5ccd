package models

import "time"

// Ingredient is one line of a recipe. Nutrition values and the cost are
// for the stated amount.
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

// Recipe is a user's stored recipe. CookTime is in minutes. ImageKey is the
// object storage key of the picture, empty until an upload URL is issued.
// Calories, Fat, Protein and EstimatedCost are sums over Ingredients and
// are kept current by SetIngredients.
type Recipe struct {
	ID            string       `json:"id"`
	UserID        string       `json:"-"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	CookTime      int          `json:"cookTime"`
	ImageKey      string       `json:"imageKey,omitempty"`
	Ingredients   []Ingredient `json:"ingredients"`
	Calories      int          `json:"calories"`
	Fat           int          `json:"fat"`
	Protein       int          `json:"protein"`
	EstimatedCost int          `json:"estimatedCost"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func (r *Recipe) CookDuration() time.Duration {
	return time.Duration(r.CookTime) * time.Minute
}

// SetIngredients replaces the ingredient list and recomputes the totals.
func (r *Recipe) SetIngredients(in []Ingredient) {
	r.Ingredients = in
	r.Calories, r.Fat, r.Protein, r.EstimatedCost = 0, 0, 0, 0
	for _, i := range in {
		r.Calories += i.Calories
		r.Fat += i.Fat
		r.Protein += i.Protein
		r.EstimatedCost += i.EstimatedCost
	}
}
