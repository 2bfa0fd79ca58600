package models

import "time"

const (
	OrderStatusNew            = "new"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusReady          = "ready"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

type Order struct {
	ID            int         `json:"id"`
	OrderNumber   string      `json:"order_number"`
	RestaurantID  int         `json:"restaurant_id"`
	CustomerID    int         `json:"customer_id"`
	CustomerName  string      `json:"customer_name,omitempty"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Status        string      `json:"status"`
	DeliveryType  string      `json:"delivery_type"`
	Address       string      `json:"address,omitempty"`
	PaymentMethod string      `json:"payment_method"`
	Subtotal      float64     `json:"subtotal"`
	DeliveryFee   float64     `json:"delivery_fee"`
	Total         float64     `json:"total"`
	Observation   string      `json:"observation,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart item at submission time.
type OrderItem struct {
	ID              int              `json:"id"`
	OrderID         int              `json:"order_id"`
	ProductID       int              `json:"product_id"`
	ProductName     string           `json:"product_name"`
	Quantity        int              `json:"quantity"`
	UnitPrice       float64          `json:"unit_price"`
	TotalPrice      float64          `json:"total_price"`
	SelectedOptions []SelectedOption `json:"selected_options,omitempty"`
	HalfAndHalf     *HalfAndHalf     `json:"half_and_half,omitempty"`
	Observation     string           `json:"observation,omitempty"`
}

type Customer struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}
