package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/mealplanner/internal/common"
	"github.com/dmitrijs2005/mealplanner/internal/logging"
	"github.com/dmitrijs2005/mealplanner/internal/server/models"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/repomanager"
	"github.com/oklog/ulid/v2"
	"golang.org/x/oauth2"
)

// OAuthService runs the authorization-code flow that links a user's
// calendar. Pending authorizations are kept as state records instead of
// server-side sessions, so any instance can serve the callback.
type OAuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	oauth       *oauth2.Config
	httpClient  *http.Client
	stateTTL    time.Duration
	logger      logging.Logger
	now         func() time.Time
}

func NewOAuthService(db *sql.DB, m repomanager.RepositoryManager, oauth *oauth2.Config, httpClient *http.Client, stateTTL time.Duration, logger logging.Logger) *OAuthService {
	return &OAuthService{
		db:          db,
		repomanager: m,
		oauth:       oauth,
		httpClient:  httpClient,
		stateTTL:    stateTTL,
		logger:      logger.With("module", "oauth"),
		now:         time.Now,
	}
}

// BeginAuthorization records a pending authorization for userID and returns
// the provider consent URL. redirectURL is where the browser is sent once
// the callback completes.
func (s *OAuthService) BeginAuthorization(ctx context.Context, userID, redirectURL string) (string, error) {
	if redirectURL == "" {
		return "", common.ErrMissingRedirect
	}

	now := s.now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("state id: %w", err)
	}

	st := &models.OAuthState{
		State:       id.String(),
		UserID:      userID,
		RedirectURL: redirectURL,
		ExpiresAt:   now.Add(s.stateTTL).UTC(),
	}
	if err := s.repomanager.OAuthStates(s.db).Create(ctx, st); err != nil {
		return "", err
	}

	return s.oauth.AuthCodeURL(st.State, oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// CompleteAuthorization consumes the state, exchanges code for tokens and
// stores them, replacing any previous link. It returns the redirect URL
// recorded by BeginAuthorization.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, state, code string) (string, error) {
	if state == "" || code == "" {
		return "", common.ErrInvalidState
	}

	st, err := s.repomanager.OAuthStates(s.db).Consume(ctx, state, s.now())
	if err != nil {
		return "", err
	}

	tok, err := s.oauth.Exchange(withHTTPClient(ctx, s.httpClient), code)
	if err != nil {
		s.logger.Warn(ctx, "authorization code exchange rejected", "user_id", st.UserID, "error", describeOAuthError(err))
		return "", fmt.Errorf("%w: %v", common.ErrTokenExchange, err)
	}
	if tok.RefreshToken == "" {
		return "", fmt.Errorf("%w: provider returned no refresh token", common.ErrTokenExchange)
	}

	cred := &models.OAuthCredential{
		UserID:            st.UserID,
		AccessToken:       tok.AccessToken,
		RefreshToken:      tok.RefreshToken,
		AccessTokenExpiry: tokenExpiry(tok, s.now().UTC()),
	}
	if err := s.repomanager.Credentials(s.db).Upsert(ctx, cred); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "calendar linked", "user_id", st.UserID)
	return st.RedirectURL, nil
}

// PurgeExpiredStates removes abandoned authorizations.
func (s *OAuthService) PurgeExpiredStates(ctx context.Context) (int64, error) {
	return s.repomanager.OAuthStates(s.db).PurgeExpired(ctx, s.now())
}
