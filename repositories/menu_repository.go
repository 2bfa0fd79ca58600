package repositories

import (
	"context"
	"time"

	"orderhub/config"
	"orderhub/models"

	"github.com/jackc/pgx/v5"
)

type MenuRepository struct{}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

func (r *MenuRepository) GetCategories(ctx context.Context, restaurantID int) ([]models.Category, error) {
	query := `SELECT id, restaurant_id, name, display_order, is_active, created_at
	          FROM categories WHERE restaurant_id = $1 AND is_active = true
	          ORDER BY display_order, name`

	rows, err := config.DB.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.RestaurantID, &cat.Name, &cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *MenuRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (restaurant_id, name, display_order, is_active, created_at)
		VALUES ($1, $2, $3, true, $4)
		RETURNING id, created_at
	`
	return config.DB.QueryRow(ctx, query,
		category.RestaurantID, category.Name, category.DisplayOrder, time.Now(),
	).Scan(&category.ID, &category.CreatedAt)
}

// GetMenu returns the customer-facing menu: active products ordered by
// category display order, each with its option groups and options nested.
func (r *MenuRepository) GetMenu(ctx context.Context, restaurantID int) ([]models.Product, error) {
	query := `
		SELECT p.id, p.restaurant_id, p.category_id, p.name, p.description, p.price,
		       COALESCE(p.image_url, ''), p.allows_half_and_half, p.is_active, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.restaurant_id = $1 AND p.is_active = true AND c.is_active = true
		ORDER BY c.display_order, c.name, p.name
	`

	rows, err := config.DB.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description,
			&p.Price, &p.ImageURL, &p.AllowsHalfAndHalf, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range products {
		groups, err := r.getOptionGroups(ctx, products[i].ID)
		if err != nil {
			return nil, err
		}
		products[i].OptionGroups = groups
	}
	return products, nil
}

func (r *MenuRepository) GetProductByID(ctx context.Context, restaurantID, productID int) (*models.Product, error) {
	query := `
		SELECT id, restaurant_id, category_id, name, description, price,
		       COALESCE(image_url, ''), allows_half_and_half, is_active, created_at, updated_at
		FROM products WHERE id = $1 AND restaurant_id = $2
	`

	var p models.Product
	err := config.DB.QueryRow(ctx, query, productID, restaurantID).Scan(
		&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.ImageURL, &p.AllowsHalfAndHalf, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	groups, err := r.getOptionGroups(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.OptionGroups = groups
	return &p, nil
}

func (r *MenuRepository) getOptionGroups(ctx context.Context, productID int) ([]models.OptionGroup, error) {
	query := `
		SELECT id, product_id, name, selection_type, min_selection, max_selection, price_rule, display_order
		FROM option_groups WHERE product_id = $1 ORDER BY display_order, id
	`

	rows, err := config.DB.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []models.OptionGroup{}
	for rows.Next() {
		var g models.OptionGroup
		if err := rows.Scan(&g.ID, &g.ProductID, &g.Name, &g.SelectionType,
			&g.MinSelection, &g.MaxSelection, &g.PriceRule, &g.DisplayOrder); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range groups {
		options, err := r.getOptions(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Options = options
	}
	return groups, nil
}

func (r *MenuRepository) getOptions(ctx context.Context, groupID int) ([]models.Option, error) {
	query := `
		SELECT id, group_id, name, price, is_available, display_order
		FROM options WHERE group_id = $1 ORDER BY display_order, id
	`

	rows, err := config.DB.Query(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.GroupID, &o.Name, &o.Price, &o.IsAvailable, &o.DisplayOrder); err != nil {
			return nil, err
		}
		options = append(options, o)
	}
	return options, rows.Err()
}

func (r *MenuRepository) CreateProduct(ctx context.Context, product *models.Product, groups []models.OptionGroup) error {
	return pgx.BeginFunc(ctx, config.DB, func(tx pgx.Tx) error {
		now := time.Now()
		err := tx.QueryRow(ctx, `
			INSERT INTO products (restaurant_id, category_id, name, description, price, image_url, allows_half_and_half, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true, $8, $9)
			RETURNING id, created_at, updated_at
		`, product.RestaurantID, product.CategoryID, product.Name, product.Description,
			product.Price, product.ImageURL, product.AllowsHalfAndHalf, now, now,
		).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range groups {
			groups[i].ProductID = product.ID
			if err := insertOptionGroup(ctx, tx, &groups[i]); err != nil {
				return err
			}
		}
		product.OptionGroups = groups
		return nil
	})
}

func insertOptionGroup(ctx context.Context, tx pgx.Tx, group *models.OptionGroup) error {
	err := tx.QueryRow(ctx, `
		INSERT INTO option_groups (product_id, name, selection_type, min_selection, max_selection, price_rule, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, group.ProductID, group.Name, group.SelectionType, group.MinSelection,
		group.MaxSelection, group.PriceRule, group.DisplayOrder,
	).Scan(&group.ID)
	if err != nil {
		return err
	}

	for i := range group.Options {
		group.Options[i].GroupID = group.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO options (group_id, name, price, is_available, display_order)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, group.ID, group.Options[i].Name, group.Options[i].Price,
			group.Options[i].IsAvailable, group.Options[i].DisplayOrder,
		).Scan(&group.Options[i].ID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *MenuRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE products SET category_id = $1, name = $2, description = $3, price = $4,
	          image_url = $5, allows_half_and_half = $6, is_active = $7, updated_at = $8
	          WHERE id = $9 AND restaurant_id = $10`
	_, err := config.DB.Exec(ctx, query,
		product.CategoryID, product.Name, product.Description, product.Price,
		product.ImageURL, product.AllowsHalfAndHalf, product.IsActive, time.Now(),
		product.ID, product.RestaurantID,
	)
	return err
}

// ReplaceOptionGroups swaps the full option-group set of a product. Historic
// orders keep their denormalized snapshots, so replacing is safe.
func (r *MenuRepository) ReplaceOptionGroups(ctx context.Context, productID int, groups []models.OptionGroup) error {
	return pgx.BeginFunc(ctx, config.DB, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM options WHERE group_id IN (SELECT id FROM option_groups WHERE product_id = $1)`, productID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM option_groups WHERE product_id = $1`, productID); err != nil {
			return err
		}
		for i := range groups {
			groups[i].ProductID = productID
			if err := insertOptionGroup(ctx, tx, &groups[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteProduct soft-deactivates: historic orders keep referencing the row.
func (r *MenuRepository) DeleteProduct(ctx context.Context, restaurantID, productID int) error {
	_, err := config.DB.Exec(ctx,
		`UPDATE products SET is_active = false, updated_at = $1 WHERE id = $2 AND restaurant_id = $3`,
		time.Now(), productID, restaurantID)
	return err
}
