package repositories

import (
	"context"
	"time"

	"orderhub/config"
	"orderhub/models"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (restaurant_id, email, password, full_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		user.RestaurantID, user.Email, user.Password, user.FullName, user.Role, now, now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, restaurant_id, email, password, full_name, role, created_at, updated_at
	          FROM users WHERE email = $1`

	var user models.User
	err := config.DB.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.RestaurantID, &user.Email, &user.Password,
		&user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, restaurant_id, email, password, full_name, role, created_at, updated_at
	          FROM users WHERE id = $1`

	var user models.User
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.RestaurantID, &user.Email, &user.Password,
		&user.FullName, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
