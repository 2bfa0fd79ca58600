package models

import "time"

type Category struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type Product struct {
	ID                int           `json:"id"`
	RestaurantID      int           `json:"restaurant_id"`
	CategoryID        int           `json:"category_id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Price             float64       `json:"price"`
	ImageURL          string        `json:"image_url,omitempty"`
	AllowsHalfAndHalf bool          `json:"allows_half_and_half"`
	IsActive          bool          `json:"is_active"`
	OptionGroups      []OptionGroup `json:"option_groups,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type SelectionType string

const (
	SelectionSingle   SelectionType = "single"
	SelectionMultiple SelectionType = "multiple"
)

type PriceRule string

const (
	PriceRuleSum     PriceRule = "sum"
	PriceRuleHighest PriceRule = "highest"
	PriceRuleAverage PriceRule = "average"
)

type OptionGroup struct {
	ID            int           `json:"id"`
	ProductID     int           `json:"product_id"`
	Name          string        `json:"name"`
	SelectionType SelectionType `json:"selection_type"`
	MinSelection  int           `json:"min_selection"`
	MaxSelection  int           `json:"max_selection"`
	PriceRule     PriceRule     `json:"price_rule"`
	DisplayOrder  int           `json:"display_order"`
	Options       []Option      `json:"options"`
}

type Option struct {
	ID           int     `json:"id"`
	GroupID      int     `json:"group_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	IsAvailable  bool    `json:"is_available"`
	DisplayOrder int     `json:"display_order"`
}
