package oauthstates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/dbx"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, st *models.OAuthState) error {
	query := `
		INSERT INTO oauth_states (state, user_id, redirect_url, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, st.State, st.UserID, st.RedirectURL, st.ExpiresAt.UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Consume(ctx context.Context, state string, now time.Time) (*models.OAuthState, error) {
	query := `
		DELETE FROM oauth_states
		WHERE state = $1
		RETURNING user_id, redirect_url, expires_at
	`
	st := &models.OAuthState{State: state}
	err := r.db.QueryRowContext(ctx, query, state).Scan(&st.UserID, &st.RedirectURL, &st.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidState
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if !st.ExpiresAt.After(now) {
		return nil, common.ErrInvalidState
	}
	return st, nil
}

func (r *PostgresRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `
		DELETE FROM oauth_states
		WHERE expires_at <= $1
	`
	res, err := r.db.ExecContext(ctx, query, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}
