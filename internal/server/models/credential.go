package models

import "time"

// OAuthCredential is the calendar provider grant held for one user.
// AccessTokenExpiry is always UTC. The refresh token is reused across
// refreshes and replaced only by a new authorization.
type OAuthCredential struct {
	UserID            string
	AccessToken       string
	RefreshToken      string
	AccessTokenExpiry time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Valid reports whether the access token may still be used at now.
func (c *OAuthCredential) Valid(now time.Time) bool {
	return c.AccessTokenExpiry.After(now.UTC())
}

// OAuthState is a pending authorization, keyed by the OAuth state parameter.
type OAuthState struct {
	State       string
	UserID      string
	RedirectURL string
	ExpiresAt   time.Time
}
