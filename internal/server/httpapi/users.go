package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type credentialsRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userResponse struct {
	ID        string           `json:"id"`
	UserName  string           `json:"userName"`
	MealTimes models.MealTimes `json:"mealTimes"`
	CreatedAt time.Time        `json:"createdAt"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	u, err := h.users.Register(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "user_id", u.ID)
	sendCreated(w, userResponse{ID: u.ID, UserName: u.UserName, MealTimes: u.MealTimes, CreatedAt: u.CreatedAt})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pair, err := h.users.Login(r.Context(), req.UserName, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, pair)
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, pair)
}

func (h *Handler) GetMealTimes(w http.ResponseWriter, r *http.Request) {
	mt, err := h.users.GetMealTimes(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, mt)
}

func (h *Handler) UpdateMealTimes(w http.ResponseWriter, r *http.Request) {
	var mt models.MealTimes
	if err := decodeJSON(r, &mt); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.users.UpdateMealTimes(r.Context(), userID(r), mt); err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, mt)
}
