// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mealplanner/internal/dbx"
	"github.com/dmitrijs2005/mealplanner/internal/server/migrations"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/credentials"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/oauthstates"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mealplanner/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories. OAuth
// tokens written through Credentials are sealed with sealer.
type PostgresRepositoryManager struct {
	sealer credentials.Sealer
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewPostgresRepository(db, m.sealer)
}

func (m *PostgresRepositoryManager) OAuthStates(db dbx.DBTX) oauthstates.Repository {
	return oauthstates.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Recipes(db dbx.DBTX) recipes.Repository {
	return recipes.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations with goose.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

func NewPostgresRepositoryManager(sealer credentials.Sealer) RepositoryManager {
	return &PostgresRepositoryManager{sealer: sealer}
}
