// Package credentials stores the calendar provider OAuth grant of each user.
// There is at most one credential per user.
package credentials

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrNoCredential when the user has not linked a calendar.
	Get(ctx context.Context, userID string) (*models.OAuthCredential, error)

	// Upsert creates the credential or replaces both tokens and the expiry.
	Upsert(ctx context.Context, cred *models.OAuthCredential) error

	// UpdateAccessToken stores a refreshed access token. The refresh token
	// is left untouched.
	UpdateAccessToken(ctx context.Context, userID string, accessToken string, expiry time.Time) error

	// Delete unlinks the calendar. Deleting a missing credential is not an error.
	Delete(ctx context.Context, userID string) error
}

// Sealer protects token values at rest.
type Sealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}
