package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/mealplanner/internal/client/client"
	"github.com/dmitrijs2005/mealplanner/internal/client/models"
)

type fakeAPI struct {
	pingErr  error
	loggedIn bool
	loginErr error

	user, password string

	mealTimes models.MealTimes
	recipes   []models.Recipe
	created   *models.Recipe
	deleted   string
	upload    *models.ImageUpload
	linked    bool
	unlinked  bool
	scheduled *models.ScheduleRequest
	err       error
}

var _ client.Client = (*fakeAPI)(nil)

func (f *fakeAPI) Ping(context.Context) error { return f.pingErr }

func (f *fakeAPI) Register(_ context.Context, username, password string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.User{ID: "u1", UserName: username, MealTimes: models.MealTimes{Breakfast: "08:00", Lunch: "12:00", Dinner: "18:00"}}, nil
}

func (f *fakeAPI) Login(_ context.Context, username, password string) error {
	if f.loginErr != nil {
		return f.loginErr
	}
	f.user, f.password, f.loggedIn = username, password, true
	return nil
}

func (f *fakeAPI) Logout()        { f.loggedIn = false }
func (f *fakeAPI) LoggedIn() bool { return f.loggedIn }

func (f *fakeAPI) MealTimes(context.Context) (*models.MealTimes, error) {
	mt := f.mealTimes
	return &mt, f.err
}

func (f *fakeAPI) SetMealTimes(_ context.Context, mt models.MealTimes) error {
	f.mealTimes = mt
	return f.err
}

func (f *fakeAPI) CreateRecipe(_ context.Context, name, description string, cookTime int, ingredients []models.Ingredient) (*models.Recipe, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &models.Recipe{ID: "r1", Name: name, Description: description, CookTime: cookTime, Ingredients: ingredients}
	for _, i := range ingredients {
		f.created.Calories += i.Calories
		f.created.EstimatedCost += i.EstimatedCost
	}
	return f.created, nil
}

func (f *fakeAPI) DeleteRecipe(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = id
	return nil
}

func (f *fakeAPI) ListRecipes(context.Context) ([]models.Recipe, error) { return f.recipes, f.err }

func (f *fakeAPI) RecipeImageUpload(_ context.Context, id string) (*models.ImageUpload, error) {
	return f.upload, f.err
}

func (f *fakeAPI) LinkStatus(context.Context) (bool, error) { return f.linked, f.err }

func (f *fakeAPI) AuthorizeURL(redirectURL string) (string, error) {
	return "http://api.example/api/oauth/authorize?redirectUrl=" + redirectURL, f.err
}

func (f *fakeAPI) Unlink(context.Context) error {
	f.unlinked = true
	return f.err
}

func (f *fakeAPI) Schedule(_ context.Context, req models.ScheduleRequest) error {
	f.scheduled = &req
	return f.err
}

// newTestApp feeds input to the app line by line and captures its output.
func newTestApp(api *fakeAPI, input ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		api:    api,
		reader: bufio.NewReader(strings.NewReader(strings.Join(input, "\n") + "\n")),
		out:    out,
	}, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
}
