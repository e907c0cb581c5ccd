package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/mealplanner/internal/server/config"
	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
)

// tokenServer fakes the provider token endpoint.
type tokenServer struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	body   string
	forms  []url.Values
}

func newTokenServer(t *testing.T, status int, body string) *tokenServer {
	t.Helper()
	ts := &tokenServer{status: status, body: body}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		ts.mu.Lock()
		ts.forms = append(ts.forms, r.PostForm)
		status, body := ts.status, ts.body
		ts.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *tokenServer) calls() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.forms)
}

func (ts *tokenServer) lastForm() url.Values {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if len(ts.forms) == 0 {
		return nil
	}
	return ts.forms[len(ts.forms)-1]
}

func testOAuthConfig(tokenURL string) *oauth2.Config {
	return NewOAuthConfig(&config.Config{
		GoogleClientID:     "client-id",
		GoogleClientSecret: "client-secret",
		GoogleRedirectURL:  "http://localhost/api/oauth/callback",
		GoogleAuthURL:      "https://provider.example/auth",
		GoogleTokenURL:     tokenURL,
	})
}

// calendarServer fakes the calendar events endpoint. Insert number failAt
// (0-based) is answered with 403; -1 never fails.
type calendarServer struct {
	*httptest.Server

	mu      sync.Mutex
	failAt  int
	paths   []string
	auths   []string
	events  []calendar.Event
	attempt int
}

func newCalendarServer(t *testing.T, failAt int) *calendarServer {
	t.Helper()
	cs := &calendarServer{failAt: failAt}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev calendar.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)

		cs.mu.Lock()
		n := cs.attempt
		cs.attempt++
		cs.paths = append(cs.paths, r.Method+" "+r.URL.Path)
		cs.auths = append(cs.auths, r.Header.Get("Authorization"))
		cs.events = append(cs.events, ev)
		fail := n == cs.failAt
		cs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if fail {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
			return
		}
		ev.Id = "evt-" + strings.Repeat("x", n+1)
		_ = json.NewEncoder(w).Encode(ev)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *calendarServer) endpoint() string {
	return cs.URL + "/calendar/v3/"
}

func (cs *calendarServer) attempts() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.attempt
}
