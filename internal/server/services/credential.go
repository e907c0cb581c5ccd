package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/repomanager"
	"golang.org/x/oauth2"
)

// CredentialService hands out calendar access tokens, refreshing them
// against the provider when the stored one has expired.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	oauth       *oauth2.Config
	httpClient  *http.Client
	logger      logging.Logger
	now         func() time.Time
}

func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, oauth *oauth2.Config, httpClient *http.Client, logger logging.Logger) *CredentialService {
	return &CredentialService{
		db:          db,
		repomanager: m,
		oauth:       oauth,
		httpClient:  httpClient,
		logger:      logger.With("module", "credentials"),
		now:         time.Now,
	}
}

// GetValidAccessToken returns the stored access token while it is unexpired,
// without any network call. Otherwise it performs exactly one refresh-token
// exchange, stores the new access token with expiry now+expires_in and
// returns it. The refresh token is not rotated.
//
// Errors: common.ErrorNotFound (no user), common.ErrNoCredential (calendar
// not linked), common.ErrRefreshFailed (provider rejected the refresh).
func (s *CredentialService) GetValidAccessToken(ctx context.Context, userID string) (string, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return "", err
	}

	repo := s.repomanager.Credentials(s.db)
	cred, err := repo.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	if cred.Valid(now) {
		return cred.AccessToken, nil
	}

	tok, err := s.oauth.TokenSource(withHTTPClient(ctx, s.httpClient), &oauth2.Token{RefreshToken: cred.RefreshToken}).Token()
	if err != nil {
		s.logger.Warn(ctx, "access token refresh rejected", "user_id", userID, "error", describeOAuthError(err))
		return "", fmt.Errorf("%w: %v", common.ErrRefreshFailed, err)
	}

	expiry := tokenExpiry(tok, now)
	if err := repo.UpdateAccessToken(ctx, userID, tok.AccessToken, expiry); err != nil {
		// The token is still good for this request; the next call refreshes again.
		s.logger.Warn(ctx, "failed to persist refreshed access token", "user_id", userID, "error", err)
	}

	s.logger.Debug(ctx, "access token refreshed", "user_id", userID, "expiry", expiry)
	return tok.AccessToken, nil
}

// LinkStatus reports whether the user has a stored calendar credential.
func (s *CredentialService) LinkStatus(ctx context.Context, userID string) (bool, error) {
	_, err := s.repomanager.Credentials(s.db).Get(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrNoCredential):
		return false, nil
	default:
		return false, err
	}
}

func (s *CredentialService) Unlink(ctx context.Context, userID string) error {
	if err := s.repomanager.Credentials(s.db).Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info(ctx, "calendar unlinked", "user_id", userID)
	return nil
}

// tokenExpiry computes the absolute expiry of tok from its expires_in as
// seen at now. Responses without expires_in fall back to the library's
// own Expiry, and to now (already expired) when there is neither.
func tokenExpiry(tok *oauth2.Token, now time.Time) time.Time {
	if tok.ExpiresIn > 0 {
		return now.Add(time.Duration(tok.ExpiresIn) * time.Second).UTC()
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry.UTC()
	}
	return now.UTC()
}

func describeOAuthError(err error) string {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		if re.ErrorCode != "" {
			return fmt.Sprintf("status %d: %s", re.Response.StatusCode, re.ErrorCode)
		}
		return fmt.Sprintf("status %d", re.Response.StatusCode)
	}
	return err.Error()
}
