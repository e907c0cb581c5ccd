// Package oauthstates persists pending OAuth authorizations between the
// redirect to the provider and its callback.
package oauthstates

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, st *models.OAuthState) error

	// Consume deletes and returns the state record. Unknown or expired
	// states yield common.ErrInvalidState; a state can be consumed once.
	Consume(ctx context.Context, state string, now time.Time) (*models.OAuthState, error)

	// PurgeExpired deletes records that expired at or before now.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
