package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/client/models"
	"github.com/google/uuid"
)

const tokenExpiredMessage = "token expired"

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) setTokens(p *models.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = p.AccessToken, p.RefreshToken
}

// send performs one request and decodes the envelope's data into out.
func (c *HTTPClient) send(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// call sends an authenticated request, refreshing the session once when the
// access token has expired.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	access, refresh := c.tokens()
	if access == "" {
		return ErrNotLoggedIn
	}

	err := c.send(ctx, method, path, access, in, out)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != tokenExpiredMessage {
		return err
	}
	if refresh == "" {
		return err
	}

	var pair models.TokenPair
	if err := c.send(ctx, http.MethodPost, "/api/users/refresh", "", map[string]string{"refreshToken": refresh}, &pair); err != nil {
		return err
	}
	c.setTokens(&pair)

	return c.send(ctx, method, path, pair.AccessToken, in, out)
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/health", "", nil, nil)
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	err := c.send(ctx, http.MethodPost, "/api/users/register", "", map[string]string{
		"userName": username,
		"password": password,
	}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	var pair models.TokenPair
	err := c.send(ctx, http.MethodPost, "/api/users/login", "", map[string]string{
		"userName": username,
		"password": password,
	}, &pair)
	if err != nil {
		return err
	}
	c.setTokens(&pair)
	return nil
}

func (c *HTTPClient) Logout() {
	c.setTokens(&models.TokenPair{})
}

func (c *HTTPClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

func (c *HTTPClient) MealTimes(ctx context.Context) (*models.MealTimes, error) {
	var mt models.MealTimes
	if err := c.call(ctx, http.MethodGet, "/api/users/meal-times", nil, &mt); err != nil {
		return nil, err
	}
	return &mt, nil
}

func (c *HTTPClient) SetMealTimes(ctx context.Context, mt models.MealTimes) error {
	return c.call(ctx, http.MethodPut, "/api/users/meal-times", mt, nil)
}

func (c *HTTPClient) CreateRecipe(ctx context.Context, name, description string, cookTime int, ingredients []models.Ingredient) (*models.Recipe, error) {
	var r models.Recipe
	err := c.call(ctx, http.MethodPost, "/api/recipes", map[string]any{
		"name":        name,
		"description": description,
		"cookTime":    cookTime,
		"ingredients": ingredients,
	}, &r)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *HTTPClient) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var list []models.Recipe
	if err := c.call(ctx, http.MethodGet, "/api/recipes", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) DeleteRecipe(ctx context.Context, recipeID string) error {
	return c.call(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(recipeID), nil, nil)
}

func (c *HTTPClient) RecipeImageUpload(ctx context.Context, recipeID string) (*models.ImageUpload, error) {
	var up models.ImageUpload
	if err := c.call(ctx, http.MethodPost, "/api/recipes/"+url.PathEscape(recipeID)+"/image", nil, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (c *HTTPClient) LinkStatus(ctx context.Context) (bool, error) {
	var st struct {
		IsLinked bool `json:"isLinked"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/oauth/google-link-status", nil, &st); err != nil {
		return false, err
	}
	return st.IsLinked, nil
}

// AuthorizeURL returns the address to open in a browser to link a calendar.
// The access token travels in the query because a browser cannot set the
// Authorization header on a navigation.
func (c *HTTPClient) AuthorizeURL(redirectURL string) (string, error) {
	access, _ := c.tokens()
	if access == "" {
		return "", ErrNotLoggedIn
	}
	q := url.Values{}
	q.Set("redirectUrl", redirectURL)
	q.Set("jwt", access)
	return c.baseURL + "/api/oauth/authorize?" + q.Encode(), nil
}

func (c *HTTPClient) Unlink(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/api/oauth/link", nil, nil)
}

func (c *HTTPClient) Schedule(ctx context.Context, req models.ScheduleRequest) error {
	return c.call(ctx, http.MethodPost, "/api/calendar/schedule-recipes", req, nil)
}
