package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"orderhub/config"
	"orderhub/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// InsertOrderWithItems writes the order header and all item snapshots in a
// single transaction so a failed item insert never leaves an orphaned order.
func (r *OrderRepository) InsertOrderWithItems(ctx context.Context, order *models.Order) error {
	return pgx.BeginFunc(ctx, config.DB, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (order_number, restaurant_id, customer_id, status, delivery_type,
			                    address, payment_method, subtotal, delivery_fee, total, observation,
			                    created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING id
		`, order.OrderNumber, order.RestaurantID, order.CustomerID, order.Status,
			order.DeliveryType, order.Address, order.PaymentMethod,
			order.Subtotal, order.DeliveryFee, order.Total, order.Observation,
			order.CreatedAt, order.UpdatedAt,
		).Scan(&order.ID)
		if err != nil {
			return err
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID

			selectedJSON, err := json.Marshal(item.SelectedOptions)
			if err != nil {
				return err
			}

			var halfJSON []byte
			if item.HalfAndHalf != nil {
				halfJSON, err = json.Marshal(item.HalfAndHalf)
				if err != nil {
					return err
				}
			}

			err = tx.QueryRow(ctx, `
				INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price,
				                         total_price, selected_options, half_and_half, observation, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id
			`, item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice,
				item.TotalPrice, selectedJSON, halfJSON, item.Observation, order.CreatedAt,
			).Scan(&item.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *OrderRepository) GetAllOrders(ctx context.Context, restaurantID int, status, search string, limit, offset int) ([]models.Order, int, error) {
	countArgs := []interface{}{restaurantID}
	whereConditions := []string{"o.restaurant_id = $1"}
	argIndex := 2

	if status != "" && status != "All" {
		whereConditions = append(whereConditions, fmt.Sprintf("o.status = $%d", argIndex))
		countArgs = append(countArgs, status)
		argIndex++
	}

	if search != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("o.order_number ILIKE $%d", argIndex))
		countArgs = append(countArgs, "%"+search+"%")
		argIndex++
	}

	where := " WHERE " + strings.Join(whereConditions, " AND ")

	var total int
	if err := config.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders o"+where, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT o.id, o.order_number, o.restaurant_id, o.customer_id, c.name, c.phone,
		       o.status, o.delivery_type, COALESCE(o.address, ''), o.payment_method,
		       o.subtotal, o.delivery_fee, o.total, COALESCE(o.observation, ''),
		       o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
	` + where + fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)

	queryArgs := append(countArgs, limit, offset)

	rows, err := config.DB.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.RestaurantID, &o.CustomerID,
			&o.CustomerName, &o.CustomerPhone, &o.Status, &o.DeliveryType, &o.Address,
			&o.PaymentMethod, &o.Subtotal, &o.DeliveryFee, &o.Total, &o.Observation,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}
	return orders, total, rows.Err()
}

// GetOrderByNumber returns the full order with customer data and item
// snapshots. The realtime sync re-fetches through this after an insert event.
func (r *OrderRepository) GetOrderByNumber(ctx context.Context, restaurantID int, orderNumber string) (*models.Order, error) {
	query := `
		SELECT o.id, o.order_number, o.restaurant_id, o.customer_id, c.name, c.phone,
		       o.status, o.delivery_type, COALESCE(o.address, ''), o.payment_method,
		       o.subtotal, o.delivery_fee, o.total, COALESCE(o.observation, ''),
		       o.created_at, o.updated_at
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.restaurant_id = $1 AND o.order_number = $2
	`

	var o models.Order
	err := config.DB.QueryRow(ctx, query, restaurantID, orderNumber).Scan(
		&o.ID, &o.OrderNumber, &o.RestaurantID, &o.CustomerID, &o.CustomerName,
		&o.CustomerPhone, &o.Status, &o.DeliveryType, &o.Address, &o.PaymentMethod,
		&o.Subtotal, &o.DeliveryFee, &o.Total, &o.Observation, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := r.getOrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, total_price,
		       selected_options, half_and_half, COALESCE(observation, '')
		FROM order_items WHERE order_id = $1 ORDER BY id
	`

	rows, err := config.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		var selectedJSON, halfJSON []byte
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&selectedJSON, &halfJSON, &item.Observation); err != nil {
			return nil, err
		}
		if len(selectedJSON) > 0 {
			if err := json.Unmarshal(selectedJSON, &item.SelectedOptions); err != nil {
				log.Printf("Corrupt selected_options on order item %d: %v", item.ID, err)
			}
		}
		if len(halfJSON) > 0 {
			if err := json.Unmarshal(halfJSON, &item.HalfAndHalf); err != nil {
				log.Printf("Corrupt half_and_half on order item %d: %v", item.ID, err)
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus is an idempotent fixed-value write. There is no concurrency
// token: a stale admin read can overwrite a faster concurrent transition.
func (r *OrderRepository) UpdateStatus(ctx context.Context, restaurantID int, orderID int, status string) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND restaurant_id = $4`,
		status, time.Now(), orderID, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *OrderRepository) GetOrderNumberByID(ctx context.Context, restaurantID, orderID int) (string, error) {
	var number string
	err := config.DB.QueryRow(ctx,
		`SELECT order_number FROM orders WHERE id = $1 AND restaurant_id = $2`,
		orderID, restaurantID).Scan(&number)
	return number, err
}

// UpsertCustomer finds a customer by phone within the restaurant or creates
// one. Checkout identification happens before submission, so this never runs
// inside the order transaction.
func (r *OrderRepository) UpsertCustomer(ctx context.Context, restaurantID int, name, phone string) (*models.Customer, error) {
	customer := &models.Customer{RestaurantID: restaurantID, Name: name, Phone: phone}

	err := config.DB.QueryRow(ctx, `
		INSERT INTO customers (restaurant_id, name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (restaurant_id, phone) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, created_at
	`, restaurantID, name, phone, time.Now()).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

type DashboardStats struct {
	TotalOrders   int     `json:"total_orders"`
	NewOrders     int     `json:"new_orders"`
	Preparing     int     `json:"preparing"`
	TodayOrders   int     `json:"today_orders"`
	TodayRevenue  float64 `json:"today_revenue"`
	TotalRevenue  float64 `json:"total_revenue"`
	ActiveProduct int     `json:"active_products"`
}

func (r *OrderRepository) GetDashboardStats(ctx context.Context, restaurantID int) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := config.DB.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'new'),
		       COUNT(*) FILTER (WHERE status = 'preparing'),
		       COUNT(*) FILTER (WHERE created_at >= CURRENT_DATE),
		       COALESCE(SUM(total) FILTER (WHERE created_at >= CURRENT_DATE AND status != 'cancelled'), 0),
		       COALESCE(SUM(total) FILTER (WHERE status != 'cancelled'), 0)
		FROM orders WHERE restaurant_id = $1
	`, restaurantID).Scan(&stats.TotalOrders, &stats.NewOrders, &stats.Preparing,
		&stats.TodayOrders, &stats.TodayRevenue, &stats.TotalRevenue)
	if err != nil {
		return nil, err
	}

	err = config.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE restaurant_id = $1 AND is_active = true`,
		restaurantID).Scan(&stats.ActiveProduct)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
