package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/server/auth"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/services"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type fakeUsers struct {
	registered []string
	mealTimes  map[string]models.MealTimes
	loginErr   error
}

func (f *fakeUsers) Register(_ context.Context, username, password string) (*models.User, error) {
	if len(password) < 8 {
		return nil, common.ErrValidation
	}
	for _, u := range f.registered {
		if u == username {
			return nil, common.ErrUserAlreadyExists
		}
	}
	f.registered = append(f.registered, username)
	return &models.User{ID: "u-" + username, UserName: username, MealTimes: models.DefaultMealTimes()}, nil
}

func (f *fakeUsers) Login(_ context.Context, username, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if password != "correct-horse" {
		return nil, common.ErrorUnauthorized
	}
	return &services.TokenPair{AccessToken: "access-" + username, RefreshToken: "refresh-" + username}, nil
}

func (f *fakeUsers) RefreshToken(_ context.Context, token string) (*services.TokenPair, error) {
	if token != "good-refresh" {
		return nil, common.ErrRefreshTokenExpired
	}
	return &services.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (f *fakeUsers) GetMealTimes(_ context.Context, userID string) (models.MealTimes, error) {
	mt, ok := f.mealTimes[userID]
	if !ok {
		return models.MealTimes{}, common.ErrorNotFound
	}
	return mt, nil
}

func (f *fakeUsers) UpdateMealTimes(_ context.Context, userID string, mt models.MealTimes) error {
	if err := mt.Validate(); err != nil {
		return err
	}
	f.mealTimes[userID] = mt
	return nil
}

type fakeRecipes struct {
	byID map[string]*models.Recipe
}

func (f *fakeRecipes) Create(_ context.Context, userID string, draft *models.Recipe) (*models.Recipe, error) {
	if draft.Name == "" || draft.CookTime <= 0 {
		return nil, common.ErrValidation
	}
	r := &models.Recipe{ID: "r1", UserID: userID, Name: draft.Name, Description: draft.Description, CookTime: draft.CookTime}
	r.SetIngredients(draft.Ingredients)
	f.byID[r.ID] = r
	return r, nil
}

func (f *fakeRecipes) Delete(ctx context.Context, userID, id string) error {
	if _, err := f.Get(ctx, userID, id); err != nil {
		return err
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRecipes) Get(_ context.Context, userID, id string) (*models.Recipe, error) {
	r, ok := f.byID[id]
	if !ok || r.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return r, nil
}

func (f *fakeRecipes) List(_ context.Context, userID string) ([]*models.Recipe, error) {
	out := []*models.Recipe{}
	for _, r := range f.byID {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipes) ImageUploadURL(ctx context.Context, userID, id string) (string, string, error) {
	if _, err := f.Get(ctx, userID, id); err != nil {
		return "", "", err
	}
	return "https://s3.example/put", "recipes/" + userID + "/k", nil
}

func (f *fakeRecipes) ImageURL(ctx context.Context, userID, id string) (string, error) {
	if _, err := f.Get(ctx, userID, id); err != nil {
		return "", err
	}
	return "https://s3.example/get", nil
}

type fakeLinks struct {
	linked map[string]bool
	err    error
}

func (f *fakeLinks) LinkStatus(_ context.Context, userID string) (bool, error) {
	return f.linked[userID], f.err
}

func (f *fakeLinks) Unlink(_ context.Context, userID string) error {
	delete(f.linked, userID)
	return f.err
}

type fakeAuthz struct {
	lastUser     string
	lastRedirect string
}

func (f *fakeAuthz) BeginAuthorization(_ context.Context, userID, redirectURL string) (string, error) {
	if redirectURL == "" {
		return "", common.ErrMissingRedirect
	}
	f.lastUser, f.lastRedirect = userID, redirectURL
	return "https://provider.example/auth?state=s1", nil
}

func (f *fakeAuthz) CompleteAuthorization(_ context.Context, state, code string) (string, error) {
	switch {
	case state != "s1":
		return "", common.ErrInvalidState
	case code == "bad":
		return "", common.ErrTokenExchange
	}
	return f.lastRedirect, nil
}

type fakeScheduler struct {
	err  error
	got  *models.ScheduleRequest
	user string
}

func (f *fakeScheduler) ScheduleRecipes(_ context.Context, userID string, req *models.ScheduleRequest) error {
	f.user, f.got = userID, req
	return f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type apiFixture struct {
	users     *fakeUsers
	recipes   *fakeRecipes
	links     *fakeLinks
	authz     *fakeAuthz
	scheduler *fakeScheduler
	pinger    *fakePinger
	handler   http.Handler
}

func newAPIFixture() *apiFixture {
	f := &apiFixture{
		users:     &fakeUsers{mealTimes: map[string]models.MealTimes{"u1": models.DefaultMealTimes()}},
		recipes:   &fakeRecipes{byID: map[string]*models.Recipe{}},
		links:     &fakeLinks{linked: map[string]bool{}},
		authz:     &fakeAuthz{},
		scheduler: &fakeScheduler{},
		pinger:    &fakePinger{},
	}
	f.handler = NewHandler(Deps{
		Users:         f.users,
		Recipes:       f.recipes,
		Links:         f.links,
		Authorization: f.authz,
		Scheduler:     f.scheduler,
		DB:            f.pinger,
		JWTSecret:     testSecret,
	}).Routes()
	return f
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, testSecret, time.Minute)
	require.NoError(t, err)
	return tok
}

// do sends a request through the full route table. A non-empty userID adds
// a bearer token for that user.
func (f *apiFixture) do(t *testing.T, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data any) Response {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw), w.Body.String())
	if data != nil && len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return Response{Success: raw.Success, Error: raw.Error}
}
