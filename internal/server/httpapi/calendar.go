package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

// ScheduleRecipes places the requested meals on the caller's calendar.
func (h *Handler) ScheduleRecipes(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.scheduler.ScheduleRecipes(r.Context(), userID(r), &req); err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Recipes scheduled successfully."})
}
