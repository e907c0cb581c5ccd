package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipe_SetIngredients(t *testing.T) {
	r := &Recipe{Name: "Porridge", Calories: 999}

	r.SetIngredients([]Ingredient{
		{Name: "Oats", Amount: 80, Unit: "g", Calories: 300, Fat: 5, Protein: 10, Carbohydrates: 54, EstimatedCost: 20},
		{Name: "Milk", Amount: 200, Unit: "ml", Calories: 130, Fat: 7, Protein: 7, Carbohydrates: 10, EstimatedCost: 35},
	})

	assert.Len(t, r.Ingredients, 2)
	assert.Equal(t, 430, r.Calories)
	assert.Equal(t, 12, r.Fat)
	assert.Equal(t, 17, r.Protein)
	assert.Equal(t, 55, r.EstimatedCost)

	r.SetIngredients(nil)
	assert.Empty(t, r.Ingredients)
	assert.Zero(t, r.Calories)
	assert.Zero(t, r.EstimatedCost)
}
