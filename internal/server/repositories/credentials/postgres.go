package credentials

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

// PostgresRepository keeps tokens sealed in oauth_credentials. Writes are
// last-writer-wins.
type PostgresRepository struct {
	db     dbx.DBTX
	sealer Sealer
}

func NewPostgresRepository(db dbx.DBTX, sealer Sealer) *PostgresRepository {
	return &PostgresRepository{db: db, sealer: sealer}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.OAuthCredential, error) {
	query := `
		SELECT access_token, refresh_token, access_token_expiry, created_at, updated_at
		FROM oauth_credentials
		WHERE user_id = $1
	`

	var access, refresh string
	cred := &models.OAuthCredential{UserID: userID}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&access, &refresh, &cred.AccessTokenExpiry, &cred.CreatedAt, &cred.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNoCredential
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if cred.AccessToken, err = r.sealer.Open(access); err != nil {
		return nil, fmt.Errorf("open access token: %w", err)
	}
	if cred.RefreshToken, err = r.sealer.Open(refresh); err != nil {
		return nil, fmt.Errorf("open refresh token: %w", err)
	}
	cred.AccessTokenExpiry = cred.AccessTokenExpiry.UTC()

	return cred, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, cred *models.OAuthCredential) error {
	access, err := r.sealer.Seal(cred.AccessToken)
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}
	refresh, err := r.sealer.Seal(cred.RefreshToken)
	if err != nil {
		return fmt.Errorf("seal refresh token: %w", err)
	}

	query := `
		INSERT INTO oauth_credentials (user_id, access_token, refresh_token, access_token_expiry)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET access_token = EXCLUDED.access_token,
		    refresh_token = EXCLUDED.refresh_token,
		    access_token_expiry = EXCLUDED.access_token_expiry,
		    updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, cred.UserID, access, refresh, cred.AccessTokenExpiry.UTC()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateAccessToken(ctx context.Context, userID string, accessToken string, expiry time.Time) error {
	access, err := r.sealer.Seal(accessToken)
	if err != nil {
		return fmt.Errorf("seal access token: %w", err)
	}

	query := `
		UPDATE oauth_credentials
		SET access_token = $2, access_token_expiry = $3, updated_at = now()
		WHERE user_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, userID, access, expiry.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNoCredential
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	query := `
		DELETE FROM oauth_credentials
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
