package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type createRecipeRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CookTime    int                 `json:"cookTime"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

type imageUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	rec, err := h.recipes.Create(r.Context(), userID(r), &models.Recipe{
		Name:        req.Name,
		Description: req.Description,
		CookTime:    req.CookTime,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendCreated(w, rec)
}

func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	list, err := h.recipes.List(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, list)
}

func (h *Handler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recipes.Get(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, rec)
}

func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.recipes.Delete(r.Context(), userID(r), r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RecipeImageUpload(w http.ResponseWriter, r *http.Request) {
	url, key, err := h.recipes.ImageUploadURL(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, imageUploadResponse{UploadURL: url, Key: key})
}

func (h *Handler) RecipeImage(w http.ResponseWriter, r *http.Request) {
	url, err := h.recipes.ImageURL(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, map[string]string{"url": url})
}
