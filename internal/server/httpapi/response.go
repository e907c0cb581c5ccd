package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/mealplanner/internal/common"
)

const maxBodyBytes = 1 << 20

// Response is the envelope of every JSON reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, statusCode int, message string) {
	sendJSON(w, statusCode, Response{Success: false, Error: message})
}

func sendSuccess(w http.ResponseWriter, data any) {
	sendJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func sendCreated(w http.ResponseWriter, data any) {
	sendJSON(w, http.StatusCreated, Response{Success: true, Data: data})
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", common.ErrValidation, err)
	}
	return nil
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidMealType),
		errors.Is(err, common.ErrInvalidTimeZone),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrMissingRedirect),
		errors.Is(err, common.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrNoCredential),
		errors.Is(err, common.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrRefreshFailed),
		errors.Is(err, common.ErrPublishFailed),
		errors.Is(err, common.ErrTokenExchange):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// upstreamMessage is the client-facing text for a 502. Provider replies are
// logged, never echoed.
func upstreamMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrTokenExchange):
		return "calendar provider rejected the authorization code"
	case errors.Is(err, common.ErrRefreshFailed):
		return "calendar provider rejected the token refresh"
	default:
		return "calendar provider rejected the request"
	}
}
