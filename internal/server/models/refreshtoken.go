package models

import "time"

// RefreshToken is a server-side API session. The token itself is opaque
// random hex; rotating a session deletes the row and issues a new one.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

// Expired reports whether the session can no longer be refreshed at now.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}
