package httpapi

import (
	"net/http"
)

type linkStatusResponse struct {
	IsLinked bool `json:"isLinked"`
}

func (h *Handler) LinkStatus(w http.ResponseWriter, r *http.Request) {
	linked, err := h.links.LinkStatus(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, linkStatusResponse{IsLinked: linked})
}

// Authorize sends the browser to the provider consent page.
func (h *Handler) Authorize(w http.ResponseWriter, r *http.Request) {
	redirectURL := r.URL.Query().Get("redirectUrl")

	authURL, err := h.authz.BeginAuthorization(r.Context(), userID(r), redirectURL)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback is the provider's redirect target. It is not authenticated: the
// state parameter identifies the user.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		h.logger.Warn(r.Context(), "authorization denied by provider", "error", e)
		sendError(w, http.StatusBadRequest, "authorization denied: "+e)
		return
	}

	redirectURL, err := h.authz.CompleteAuthorization(r.Context(), q.Get("state"), q.Get("code"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, redirectURL, http.StatusFound)
}

func (h *Handler) Unlink(w http.ResponseWriter, r *http.Request) {
	if err := h.links.Unlink(r.Context(), userID(r)); err != nil {
		h.fail(w, r, err)
		return
	}
	sendSuccess(w, linkStatusResponse{IsLinked: false})
}
