package repositories

import (
	"context"
	"time"

	"orderhub/config"
	"orderhub/models"
)

type RestaurantRepository struct{}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
		INSERT INTO restaurants (slug, name, phone, whatsapp_number, logo_url, delivery_fee, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(ctx, query,
		restaurant.Slug, restaurant.Name, restaurant.Phone, restaurant.WhatsAppNumber,
		restaurant.LogoURL, restaurant.DeliveryFee, now, now,
	).Scan(&restaurant.ID, &restaurant.CreatedAt, &restaurant.UpdatedAt)
}

func (r *RestaurantRepository) FindBySlug(ctx context.Context, slug string) (*models.Restaurant, error) {
	query := `SELECT id, slug, name, phone, whatsapp_number, COALESCE(logo_url, ''), delivery_fee, is_active, created_at, updated_at
	          FROM restaurants WHERE slug = $1 AND is_active = true`

	var rest models.Restaurant
	err := config.DB.QueryRow(ctx, query, slug).Scan(
		&rest.ID, &rest.Slug, &rest.Name, &rest.Phone, &rest.WhatsAppNumber,
		&rest.LogoURL, &rest.DeliveryFee, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id int) (*models.Restaurant, error) {
	query := `SELECT id, slug, name, phone, whatsapp_number, COALESCE(logo_url, ''), delivery_fee, is_active, created_at, updated_at
	          FROM restaurants WHERE id = $1`

	var rest models.Restaurant
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&rest.ID, &rest.Slug, &rest.Name, &rest.Phone, &rest.WhatsAppNumber,
		&rest.LogoURL, &rest.DeliveryFee, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) FindByWhatsAppNumber(ctx context.Context, number string) (*models.Restaurant, error) {
	query := `SELECT id, slug, name, phone, whatsapp_number, COALESCE(logo_url, ''), delivery_fee, is_active, created_at, updated_at
	          FROM restaurants WHERE whatsapp_number = $1 AND is_active = true`

	var rest models.Restaurant
	err := config.DB.QueryRow(ctx, query, number).Scan(
		&rest.ID, &rest.Slug, &rest.Name, &rest.Phone, &rest.WhatsAppNumber,
		&rest.LogoURL, &rest.DeliveryFee, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) UpdateLogo(ctx context.Context, id int, logoURL string) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE restaurants SET logo_url = $1, updated_at = $2 WHERE id = $3`,
		logoURL, time.Now(), id)
	return err
}
