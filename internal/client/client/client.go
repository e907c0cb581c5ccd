package client

import (
	"context"

	"github.com/dmitrijs2005/mealplanner/internal/client/models"
)

// Client is the API surface the CLI uses.
type Client interface {
	Ping(ctx context.Context) error

	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) error
	Logout()
	LoggedIn() bool

	MealTimes(ctx context.Context) (*models.MealTimes, error)
	SetMealTimes(ctx context.Context, mt models.MealTimes) error

	CreateRecipe(ctx context.Context, name, description string, cookTime int, ingredients []models.Ingredient) (*models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	DeleteRecipe(ctx context.Context, recipeID string) error
	RecipeImageUpload(ctx context.Context, recipeID string) (*models.ImageUpload, error)

	LinkStatus(ctx context.Context) (bool, error)
	AuthorizeURL(redirectURL string) (string, error)
	Unlink(ctx context.Context) error

	Schedule(ctx context.Context, req models.ScheduleRequest) error
}
