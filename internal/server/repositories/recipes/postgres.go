package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

const selectRecipe = `SELECT id, user_id, name, description, cook_time, image_key, created_at FROM recipes`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	r := &models.Recipe{}
	if err := s.Scan(&r.ID, &r.UserID, &r.Name, &r.Description, &r.CookTime, &r.ImageKey, &r.CreatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *PostgresRepository) Create(ctx context.Context, r *models.Recipe) (*models.Recipe, error) {
	query := `
		INSERT INTO recipes (user_id, name, description, cook_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := p.db.QueryRowContext(ctx, query, r.UserID, r.Name, r.Description, r.CookTime).Scan(&r.ID, &r.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Recipe, error) {
	r, err := scanRecipe(p.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return r, nil
}

func (p *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Recipe, error) {
	return p.one(ctx, selectRecipe+` WHERE user_id = $1 AND id = $2`, userID, id)
}

func (p *PostgresRepository) FindByName(ctx context.Context, userID, name string) (*models.Recipe, error) {
	return p.one(ctx, selectRecipe+` WHERE user_id = $1 AND name = $2 ORDER BY created_at LIMIT 1`, userID, name)
}

func (p *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	rows, err := p.db.QueryContext(ctx, selectRecipe+` WHERE user_id = $1 ORDER BY name, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (p *PostgresRepository) SetImageKey(ctx context.Context, userID, id, key string) error {
	query := `
		UPDATE recipes SET image_key = $3
		WHERE user_id = $1 AND id = $2
	`
	res, err := p.db.ExecContext(ctx, query, userID, id, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (p *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM recipes WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (p *PostgresRepository) AddIngredients(ctx context.Context, recipeID string, in []models.Ingredient) error {
	query := `
		INSERT INTO recipe_ingredients
			(recipe_id, position, name, amount, unit, calories, fat, protein, carbohydrates, estimated_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for i, ing := range in {
		_, err := p.db.ExecContext(ctx, query, recipeID, i, ing.Name, ing.Amount, ing.Unit,
			ing.Calories, ing.Fat, ing.Protein, ing.Carbohydrates, ing.EstimatedCost)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

const selectIngredient = `SELECT ri.recipe_id, ri.name, ri.amount, ri.unit, ri.calories, ri.fat, ri.protein, ri.carbohydrates, ri.estimated_cost FROM recipe_ingredients ri`

func (p *PostgresRepository) Ingredients(ctx context.Context, recipeID string) ([]models.Ingredient, error) {
	byRecipe, err := p.ingredients(ctx, selectIngredient+` WHERE ri.recipe_id = $1 ORDER BY ri.position`, recipeID)
	if err != nil {
		return nil, err
	}
	return byRecipe[recipeID], nil
}

func (p *PostgresRepository) IngredientsByUser(ctx context.Context, userID string) (map[string][]models.Ingredient, error) {
	return p.ingredients(ctx, selectIngredient+`
		JOIN recipes r ON r.id = ri.recipe_id
		WHERE r.user_id = $1 ORDER BY ri.recipe_id, ri.position`, userID)
}

func (p *PostgresRepository) ingredients(ctx context.Context, query string, args ...any) (map[string][]models.Ingredient, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]models.Ingredient)
	for rows.Next() {
		var (
			recipeID string
			i        models.Ingredient
		)
		if err := rows.Scan(&recipeID, &i.Name, &i.Amount, &i.Unit, &i.Calories, &i.Fat, &i.Protein, &i.Carbohydrates, &i.EstimatedCost); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out[recipeID] = append(out[recipeID], i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
