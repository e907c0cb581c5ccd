// Package httpapi exposes the meal planner services as a JSON HTTP API.
//
// Every reply uses the Response envelope. Routes marked as protected expect
// "Authorization: Bearer <access token>" issued by the login endpoint.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/services"
)

type UserAPI interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetMealTimes(ctx context.Context, userID string) (models.MealTimes, error)
	UpdateMealTimes(ctx context.Context, userID string, mt models.MealTimes) error
}

type RecipeAPI interface {
	Create(ctx context.Context, userID string, draft *models.Recipe) (*models.Recipe, error)
	Get(ctx context.Context, userID, id string) (*models.Recipe, error)
	List(ctx context.Context, userID string) ([]*models.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
	ImageUploadURL(ctx context.Context, userID, id string) (string, string, error)
	ImageURL(ctx context.Context, userID, id string) (string, error)
}

// LinkAPI reports and removes a user's calendar link.
type LinkAPI interface {
	LinkStatus(ctx context.Context, userID string) (bool, error)
	Unlink(ctx context.Context, userID string) error
}

// AuthorizationAPI drives the provider consent round trip.
type AuthorizationAPI interface {
	BeginAuthorization(ctx context.Context, userID, redirectURL string) (string, error)
	CompleteAuthorization(ctx context.Context, state, code string) (string, error)
}

type ScheduleAPI interface {
	ScheduleRecipes(ctx context.Context, userID string, req *models.ScheduleRequest) error
}

// Pinger reports storage liveness for the health endpoint. *sql.DB
// satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps groups the collaborators of Handler.
type Deps struct {
	Users         UserAPI
	Recipes       RecipeAPI
	Links         LinkAPI
	Authorization AuthorizationAPI
	Scheduler     ScheduleAPI
	DB            Pinger
	JWTSecret     []byte
	Logger        logging.Logger
}

type Handler struct {
	users     UserAPI
	recipes   RecipeAPI
	links     LinkAPI
	authz     AuthorizationAPI
	scheduler ScheduleAPI
	db        Pinger
	jwtSecret []byte
	logger    logging.Logger
}

func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Handler{
		users:     d.Users,
		recipes:   d.Recipes,
		links:     d.Links,
		authz:     d.Authorization,
		scheduler: d.Scheduler,
		db:        d.DB,
		jwtSecret: d.JWTSecret,
		logger:    logger.With("module", "http_api"),
	}
}

// Routes builds the request multiplexer wrapped in the request logger.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("POST /api/users/register", h.Register)
	mux.HandleFunc("POST /api/users/login", h.Login)
	mux.HandleFunc("POST /api/users/refresh", h.Refresh)
	mux.Handle("GET /api/users/meal-times", h.requireUser(h.GetMealTimes))
	mux.Handle("PUT /api/users/meal-times", h.requireUser(h.UpdateMealTimes))

	mux.Handle("POST /api/recipes", h.requireUser(h.CreateRecipe))
	mux.Handle("GET /api/recipes", h.requireUser(h.ListRecipes))
	mux.Handle("GET /api/recipes/{id}", h.requireUser(h.GetRecipe))
	mux.Handle("DELETE /api/recipes/{id}", h.requireUser(h.DeleteRecipe))
	mux.Handle("POST /api/recipes/{id}/image", h.requireUser(h.RecipeImageUpload))
	mux.Handle("GET /api/recipes/{id}/image", h.requireUser(h.RecipeImage))

	mux.Handle("GET /api/oauth/google-link-status", h.requireUser(h.LinkStatus))
	mux.Handle("GET /api/oauth/authorize", h.requireUserOrQuery(h.Authorize))
	mux.HandleFunc("GET /api/oauth/callback", h.Callback)
	mux.Handle("DELETE /api/oauth/link", h.requireUser(h.Unlink))

	mux.Handle("POST /api/calendar/schedule-recipes", h.requireUser(h.ScheduleRecipes))

	return h.requestLogger(mux)
}

// fail writes err with the status it maps to. Internal failures are logged
// and reported without detail.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "error", err)
		sendError(w, status, "internal error")
		return
	}
	if status == http.StatusBadGateway {
		h.logger.Warn(r.Context(), "upstream failure", "error", err)
		sendError(w, status, upstreamMessage(err))
		return
	}
	sendError(w, status, err.Error())
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			sendError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}
