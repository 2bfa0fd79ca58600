package models

import "time"

// SelectedOption is denormalized at selection time. It keeps the name and
// price the customer saw, not a live reference into the menu.
type SelectedOption struct {
	GroupName  string  `json:"group_name"`
	OptionName string  `json:"option_name"`
	Price      float64 `json:"price"`
}

// HalfAndHalf describes a single line item blending two products 50/50.
type HalfAndHalf struct {
	FirstProductID  int    `json:"first_product_id"`
	FirstName       string `json:"first_name"`
	SecondProductID int    `json:"second_product_id"`
	SecondName      string `json:"second_name"`
}

type CartItem struct {
	ID              string           `json:"id"`
	ProductID       int              `json:"product_id"`
	ProductName     string           `json:"product_name"`
	Quantity        int              `json:"quantity"`
	UnitBasePrice   float64          `json:"unit_base_price"`
	SelectedOptions []SelectedOption `json:"selected_options"`
	HalfAndHalf     *HalfAndHalf     `json:"half_and_half,omitempty"`
	Observation     string           `json:"observation,omitempty"`
	TotalPrice      float64          `json:"total_price"`
}

// Cart is bound to at most one restaurant at a time. RestaurantID == 0
// means the cart is empty and unbound.
type Cart struct {
	RestaurantID int        `json:"restaurant_id"`
	Items        []CartItem `json:"items"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.TotalPrice
	}
	return total
}
