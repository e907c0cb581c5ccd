package cli

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/client/config"
	"github.com/dmitrijs2005/mealplanner/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a, err := NewApp(cfg)
	require.NoError(t, err)
	assert.False(t, a.isLoggedIn())

	cfg.ServerURL = "ftp://nope"
	_, err = NewApp(cfg)
	assert.Error(t, err)
}

func TestRegisterLogsIn(t *testing.T) {
	stubPassword(t, "correct-horse")
	api := &fakeAPI{}
	a, out := newTestApp(api, "alice")

	require.NoError(t, a.Register(context.Background()))
	assert.True(t, api.loggedIn)
	assert.Equal(t, "alice", api.user)
	assert.Equal(t, "correct-horse", api.password)
	assert.Contains(t, out.String(), "breakfast 08:00")
	assert.Equal(t, "alice", a.userName)
}

func TestLoginFailure(t *testing.T) {
	stubPassword(t, "nope")
	api := &fakeAPI{loginErr: errors.New("unauthorized")}
	a, _ := newTestApp(api, "alice")

	assert.EqualError(t, a.Login(context.Background()), "unauthorized")
	assert.Empty(t, a.userName)
}

func TestSetMealTimes_KeepsBlankAnswers(t *testing.T) {
	api := &fakeAPI{loggedIn: true, mealTimes: models.MealTimes{Breakfast: "08:00", Lunch: "12:00", Dinner: "18:00"}}
	a, _ := newTestApp(api, "07:15", "", "19:30")

	require.NoError(t, a.SetMealTimes(context.Background()))
	assert.Equal(t, models.MealTimes{Breakfast: "07:15", Lunch: "12:00", Dinner: "19:30"}, api.mealTimes)
}

func TestAddRecipe(t *testing.T) {
	api := &fakeAPI{loggedIn: true}
	a, out := newTestApp(api, "Pasta", "25", "Boil water.", "Add pasta.", "",
		"Pasta, 200, g, 700, 3, 25, 140, 90",
		"Butter, 10, g, 72, 8",
		"")

	require.NoError(t, a.AddRecipe(context.Background()))
	require.NotNil(t, api.created)
	assert.Equal(t, "Pasta", api.created.Name)
	assert.Equal(t, 25, api.created.CookTime)
	assert.Equal(t, "Boil water.\nAdd pasta.", api.created.Description)
	assert.Equal(t, []models.Ingredient{
		{Name: "Pasta", Amount: 200, Unit: "g", Calories: 700, Fat: 3, Protein: 25, Carbohydrates: 140, EstimatedCost: 90},
		{Name: "Butter", Amount: 10, Unit: "g", Calories: 72, Fat: 8},
	}, api.created.Ingredients)
	assert.Contains(t, out.String(), "id=r1 (772 kcal, cost 90)")

	api = &fakeAPI{loggedIn: true}
	a, _ = newTestApp(api, "Toast", "5", "Toast it.", "")
	require.NoError(t, a.AddRecipe(context.Background()))
	assert.Empty(t, api.created.Ingredients)

	a, _ = newTestApp(&fakeAPI{loggedIn: true}, "Soup", "half an hour")
	assert.Error(t, a.AddRecipe(context.Background()))

	api = &fakeAPI{loggedIn: true}
	a, _ = newTestApp(api, "Soup", "30", "Simmer.", "", "Leek, two, pcs", "")
	err := a.AddRecipe(context.Background())
	assert.ErrorContains(t, err, "ingredient 1")
	assert.Nil(t, api.created)
}

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line    string
		want    models.Ingredient
		wantErr bool
	}{
		{line: "Oats, 80, g", want: models.Ingredient{Name: "Oats", Amount: 80, Unit: "g"}},
		{line: " Milk ,0.25, l, 160, 9, 8, 12, 30 ", want: models.Ingredient{
			Name: "Milk", Amount: 0.25, Unit: "l", Calories: 160, Fat: 9, Protein: 8, Carbohydrates: 12, EstimatedCost: 30,
		}},
		{line: "Salt, 1, pinch, 0", want: models.Ingredient{Name: "Salt", Amount: 1, Unit: "pinch"}},
		{line: "Oats, 80", wantErr: true},
		{line: ", 80, g", wantErr: true},
		{line: "Oats, a lot, g", wantErr: true},
		{line: "Oats, 80, g, 3.5", wantErr: true},
		{line: "Oats, 80, g, 1, 2, 3, 4, 5, 6", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseIngredientLine(tt.line)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeleteRecipe(t *testing.T) {
	api := &fakeAPI{loggedIn: true}
	a, out := newTestApp(api)
	require.NoError(t, a.DeleteRecipe(context.Background(), []string{"r1"}))
	assert.Equal(t, "r1", api.deleted)
	assert.Contains(t, out.String(), "Recipe deleted")

	assert.Error(t, a.DeleteRecipe(context.Background(), nil))

	api.err = errors.New("404 Not Found: not found")
	assert.ErrorContains(t, a.DeleteRecipe(context.Background(), []string{"r9"}), "404")
}

func TestListRecipes(t *testing.T) {
	api := &fakeAPI{loggedIn: true}
	a, out := newTestApp(api)
	require.NoError(t, a.ListRecipes(context.Background()))
	assert.Contains(t, out.String(), "No recipes yet")

	api.recipes = []models.Recipe{{ID: "r1", Name: "Pasta", CookTime: 25, ImageKey: "k"}}
	out.Reset()
	require.NoError(t, a.ListRecipes(context.Background()))
	assert.Contains(t, out.String(), "Pasta")
	assert.Contains(t, out.String(), "[image]")
}

func TestUploadImage(t *testing.T) {
	var got []byte
	var gotCT string
	store := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		got, _ = io.ReadAll(r.Body)
	}))
	defer store.Close()

	img := []byte("\x89PNG\x0D\x0A\x1A\x0A\x00\x00\x00\x0DIHDR")
	path := filepath.Join(t.TempDir(), "dish.png")
	require.NoError(t, os.WriteFile(path, img, 0o600))

	api := &fakeAPI{loggedIn: true, upload: &models.ImageUpload{UploadURL: store.URL + "/put", Key: "k"}}
	a, out := newTestApp(api)
	a.upload = store.Client()

	require.NoError(t, a.UploadImage(context.Background(), []string{"r1", path}))
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, img, got)
	assert.Contains(t, out.String(), "Image uploaded")

	assert.Error(t, a.UploadImage(context.Background(), []string{"r1"}))
}

func TestLinkCommands(t *testing.T) {
	api := &fakeAPI{loggedIn: true, linked: true}
	a, out := newTestApp(api, "")

	require.NoError(t, a.LinkCalendar(context.Background()))
	assert.Contains(t, out.String(), "redirectUrl=about:blank")

	out.Reset()
	require.NoError(t, a.LinkStatus(context.Background()))
	assert.Contains(t, out.String(), "Calendar is linked")

	require.NoError(t, a.UnlinkCalendar(context.Background()))
	assert.True(t, api.unlinked)
}

func TestSchedule(t *testing.T) {
	api := &fakeAPI{loggedIn: true}
	a, out := newTestApp(api,
		"Europe/Riga",
		"2025-01-06 Dinner Spaghetti Bolognese",
		"2025-01-07 Lunch Soup",
		"",
		"2025-01-13 Breakfast Oats",
		"",
	)

	require.NoError(t, a.Schedule(context.Background()))
	require.NotNil(t, api.scheduled)
	assert.Equal(t, models.ScheduleRequest{
		ThisWeekRecipes: []models.ScheduledRecipe{
			{RecipeName: "Spaghetti Bolognese", Date: "2025-01-06", MealType: "Dinner"},
			{RecipeName: "Soup", Date: "2025-01-07", MealType: "Lunch"},
		},
		NextWeekRecipes: []models.ScheduledRecipe{
			{RecipeName: "Oats", Date: "2025-01-13", MealType: "Breakfast"},
		},
		TimeZone: "Europe/Riga",
	}, *api.scheduled)
	assert.Contains(t, out.String(), "Scheduled 3 meals")
}

func TestSchedule_RejectsMalformedLine(t *testing.T) {
	api := &fakeAPI{loggedIn: true}
	a, _ := newTestApp(api, "", "2025-01-06 Dinner", "")

	assert.Error(t, a.Schedule(context.Background()))
	assert.Nil(t, api.scheduled)
}

func TestOnlineStatus(t *testing.T) {
	api := &fakeAPI{}
	a, out := newTestApp(api)

	a.checkOnline(context.Background())
	assert.Equal(t, ModeOnline, a.currentMode())
	assert.Equal(t, "(online)", a.status())

	api.pingErr = errors.New("down")
	a.checkOnline(context.Background())
	assert.Equal(t, ModeOffline, a.currentMode())
	assert.Contains(t, out.String(), "Switched to offline mode")

	api.loggedIn = true
	a.userName = "alice"
	assert.Equal(t, "(alice offline)", a.status())
}

func TestStartOnlineStatusWatcher_StopsOnCancel(t *testing.T) {
	a, _ := newTestApp(&fakeAPI{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		a.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return a.currentMode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
