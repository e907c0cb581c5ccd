package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/server/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// NewOAuthConfig builds the provider client registration. Client credentials
// are sent in the form body so a token request is always a single POST.
func NewOAuthConfig(cfg *config.Config) *oauth2.Config {
	ep := google.Endpoint
	if cfg.GoogleAuthURL != "" {
		ep.AuthURL = cfg.GoogleAuthURL
	}
	if cfg.GoogleTokenURL != "" {
		ep.TokenURL = cfg.GoogleTokenURL
	}
	ep.AuthStyle = oauth2.AuthStyleInParams

	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Endpoint:     ep,
		Scopes:       []string{common.CalendarScope},
	}
}

// withHTTPClient makes oauth2 use client for its token requests.
func withHTTPClient(ctx context.Context, client *http.Client) context.Context {
	if client == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, client)
}
