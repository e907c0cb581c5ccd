package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mealplanner/internal/dbx"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/oauthstates"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a *sql.DB or a *sql.Tx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	OAuthStates(db dbx.DBTX) oauthstates.Repository
	Recipes(db dbx.DBTX) recipes.Repository
}
