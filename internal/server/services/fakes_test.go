package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/dbx"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/oauthstates"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/users"
	"github.com/google/uuid"
)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	mu sync.Mutex

	users       map[string]*models.User
	creds       map[string]*models.OAuthCredential
	states      map[string]*models.OAuthState
	recipes     []*models.Recipe
	ingredients map[string][]models.Ingredient
	refresh     map[string]*models.RefreshToken
	credUpdates int

	usersErr      error
	credGetErr    error
	credUpdateErr error
	credUpsertErr error
	recipeErr     error
	ingredientErr error
	refreshErr    error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		creds:   map[string]*models.OAuthCredential{},
		states:  map[string]*models.OAuthState{},
		refresh: map[string]*models.RefreshToken{},

		ingredients: map[string][]models.Ingredient{},
	}
}

func (m *memStore) addUser(id string, mt models.MealTimes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = &models.User{ID: id, UserName: id, MealTimes: mt}
}

func (m *memStore) addCred(userID, access, refresh string, expiry time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds[userID] = &models.OAuthCredential{UserID: userID, AccessToken: access, RefreshToken: refresh, AccessTokenExpiry: expiry}
}

func (m *memStore) cred(userID string) *models.OAuthCredential {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.creds[userID]
	if !ok {
		return nil
	}
	cp := *c
	return &cp
}

// RepositoryManager

func (m *memStore) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *memStore) Users(dbx.DBTX) users.Repository                 { return memUsers{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memRefresh{m} }
func (m *memStore) Credentials(dbx.DBTX) credentials.Repository     { return memCreds{m} }
func (m *memStore) OAuthStates(dbx.DBTX) oauthstates.Repository     { return memStates{m} }
func (m *memStore) Recipes(dbx.DBTX) recipes.Repository             { return memRecipes{m} }

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.usersErr != nil {
		return nil, r.m.usersErr
	}
	u.ID = "id-" + u.UserName
	r.m.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.usersErr != nil {
		return nil, r.m.usersErr
	}
	for _, u := range r.m.users {
		if u.UserName == login {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.usersErr != nil {
		return nil, r.m.usersErr
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r memUsers) UpdateMealTimes(_ context.Context, id string, mt models.MealTimes) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.MealTimes = mt
	return nil
}

type memRefresh struct{ m *memStore }

func (r memRefresh) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.refreshErr != nil {
		return r.m.refreshErr
	}
	r.m.refresh[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: expiresAt}
	return nil
}

func (r memRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	t, ok := r.m.refresh[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r memRefresh) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.refresh, token)
	return nil
}

func (r memRefresh) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, t := range r.m.refresh {
		if !t.Expires.After(now) {
			delete(r.m.refresh, k)
			n++
		}
	}
	return n, nil
}

type memCreds struct{ m *memStore }

func (r memCreds) Get(_ context.Context, userID string) (*models.OAuthCredential, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.credGetErr != nil {
		return nil, r.m.credGetErr
	}
	c, ok := r.m.creds[userID]
	if !ok {
		return nil, common.ErrNoCredential
	}
	cp := *c
	return &cp, nil
}

func (r memCreds) Upsert(_ context.Context, c *models.OAuthCredential) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.credUpsertErr != nil {
		return r.m.credUpsertErr
	}
	cp := *c
	r.m.creds[c.UserID] = &cp
	return nil
}

func (r memCreds) UpdateAccessToken(_ context.Context, userID, access string, expiry time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.credUpdates++
	if r.m.credUpdateErr != nil {
		return r.m.credUpdateErr
	}
	c, ok := r.m.creds[userID]
	if !ok {
		return common.ErrNoCredential
	}
	c.AccessToken = access
	c.AccessTokenExpiry = expiry
	return nil
}

func (r memCreds) Delete(_ context.Context, userID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.creds, userID)
	return nil
}

type memStates struct{ m *memStore }

func (r memStates) Create(_ context.Context, st *models.OAuthState) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *st
	r.m.states[st.State] = &cp
	return nil
}

func (r memStates) Consume(_ context.Context, state string, now time.Time) (*models.OAuthState, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	st, ok := r.m.states[state]
	if !ok {
		return nil, common.ErrInvalidState
	}
	delete(r.m.states, state)
	if !st.ExpiresAt.After(now) {
		return nil, common.ErrInvalidState
	}
	return st, nil
}

func (r memStates) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for k, st := range r.m.states {
		if !st.ExpiresAt.After(now) {
			delete(r.m.states, k)
			n++
		}
	}
	return n, nil
}

type memRecipes struct{ m *memStore }

func (r memRecipes) Create(_ context.Context, rc *models.Recipe) (*models.Recipe, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.recipeErr != nil {
		return nil, r.m.recipeErr
	}
	rc.ID = uuid.NewString()
	r.m.recipes = append(r.m.recipes, rc)
	return rc, nil
}

func (r memRecipes) Get(_ context.Context, userID, id string) (*models.Recipe, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, rc := range r.m.recipes {
		if rc.UserID == userID && rc.ID == id {
			return rc, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memRecipes) ListByUser(_ context.Context, userID string) ([]*models.Recipe, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*models.Recipe
	for _, rc := range r.m.recipes {
		if rc.UserID == userID {
			out = append(out, rc)
		}
	}
	return out, nil
}

func (r memRecipes) FindByName(_ context.Context, userID, name string) (*models.Recipe, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.recipeErr != nil {
		return nil, r.m.recipeErr
	}
	for _, rc := range r.m.recipes {
		if rc.UserID == userID && rc.Name == name {
			return rc, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memRecipes) SetImageKey(_ context.Context, userID, id, key string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, rc := range r.m.recipes {
		if rc.UserID == userID && rc.ID == id {
			rc.ImageKey = key
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memRecipes) Delete(_ context.Context, userID, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i, rc := range r.m.recipes {
		if rc.UserID == userID && rc.ID == id {
			r.m.recipes = append(r.m.recipes[:i], r.m.recipes[i+1:]...)
			delete(r.m.ingredients, id)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r memRecipes) AddIngredients(_ context.Context, recipeID string, in []models.Ingredient) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.ingredientErr != nil {
		return r.m.ingredientErr
	}
	r.m.ingredients[recipeID] = append(r.m.ingredients[recipeID], in...)
	return nil
}

func (r memRecipes) Ingredients(_ context.Context, recipeID string) ([]models.Ingredient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.ingredientErr != nil {
		return nil, r.m.ingredientErr
	}
	return r.m.ingredients[recipeID], nil
}

func (r memRecipes) IngredientsByUser(_ context.Context, userID string) (map[string][]models.Ingredient, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.ingredientErr != nil {
		return nil, r.m.ingredientErr
	}
	out := map[string][]models.Ingredient{}
	for _, rc := range r.m.recipes {
		if rc.UserID == userID && len(r.m.ingredients[rc.ID]) > 0 {
			out[rc.ID] = r.m.ingredients[rc.ID]
		}
	}
	return out, nil
}
