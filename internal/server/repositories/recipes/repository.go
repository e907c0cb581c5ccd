// Package recipes declares storage for user recipes.
package recipes

import (
	"context"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error)
	Get(ctx context.Context, userID, id string) (*models.Recipe, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error)

	// FindByName matches the name exactly (case-sensitive). When several
	// recipes share a name the oldest wins.
	FindByName(ctx context.Context, userID, name string) (*models.Recipe, error)

	SetImageKey(ctx context.Context, userID, id, key string) error

	// Delete removes the user's recipe and its ingredients.
	Delete(ctx context.Context, userID, id string) error

	// AddIngredients stores in as the recipe's ingredients, in order.
	AddIngredients(ctx context.Context, recipeID string, in []models.Ingredient) error
	Ingredients(ctx context.Context, recipeID string) ([]models.Ingredient, error)
	// IngredientsByUser returns the ingredients of every recipe of the
	// user keyed by recipe id.
	IngredientsByUser(ctx context.Context, userID string) (map[string][]models.Ingredient, error)
}
