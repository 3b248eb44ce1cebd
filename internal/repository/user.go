package repository

import (
	"context"

	"github.com/taskbot-app/taskbot/internal/database"
	"github.com/taskbot-app/taskbot/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetOrCreate(ctx context.Context, userID int64, username, firstName string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (user_id, username, first_name) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name
		 RETURNING user_id, username, first_name`,
		userID, username, firstName,
	).Scan(&user.UserID, &user.Username, &user.FirstName)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT user_id, username, first_name FROM users WHERE user_id = $1`,
		userID,
	).Scan(&user.UserID, &user.Username, &user.FirstName)
	if err != nil {
		return nil, err
	}
	return user, nil
}
