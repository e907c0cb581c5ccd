package users

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

// Create inserts the user with its meal times and fills in ID and CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, salt, verifier, breakfast_time, lunch_time, dinner_time)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	mt := user.MealTimes
	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.Salt, user.Verifier, int(mt.Breakfast), int(mt.Lunch), int(mt.Dinner)).
		Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const selectUser = `SELECT id, username, verifier, salt, breakfast_time, lunch_time, dinner_time, created_at FROM users`

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var breakfast, lunch, dinner int
	err := row.Scan(&user.ID, &user.UserName, &user.Verifier, &user.Salt, &breakfast, &lunch, &dinner, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.MealTimes = models.MealTimes{
		Breakfast: models.TimeOfDay(breakfast),
		Lunch:     models.TimeOfDay(lunch),
		Dinner:    models.TimeOfDay(dinner),
	}
	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, userName))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUser+` WHERE id = $1`, id))
}

// UpdateMealTimes replaces all three meal times. A missing user yields
// common.ErrorNotFound.
func (r *PostgresRepository) UpdateMealTimes(ctx context.Context, id string, mt models.MealTimes) error {
	query :=
		`UPDATE users SET breakfast_time = $2, lunch_time = $3, dinner_time = $4
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, int(mt.Breakfast), int(mt.Lunch), int(mt.Dinner))
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
