package models

type RegisterRestaurantRequest struct {
	RestaurantName string `json:"restaurant_name" form:"restaurant_name" binding:"required,min=2"`
	Slug           string `json:"slug" form:"slug" binding:"required,min=2"`
	Email          string `json:"email" form:"email" binding:"required,email"`
	Password       string `json:"password" form:"password" binding:"required,min=6"`
	FullName       string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone          string `json:"phone" form:"phone" binding:"omitempty"`
	WhatsAppNumber string `json:"whatsapp_number" form:"whatsapp_number" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateProductRequest struct {
	Name              string               `json:"name" binding:"required"`
	Description       string               `json:"description"`
	CategoryID        int                  `json:"category_id" binding:"required"`
	Price             float64              `json:"price" binding:"gte=0"`
	ImageURL          string               `json:"image_url"`
	AllowsHalfAndHalf bool                 `json:"allows_half_and_half"`
	OptionGroups      []OptionGroupRequest `json:"option_groups"`
}

type UpdateProductRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	CategoryID        int     `json:"category_id"`
	Price             float64 `json:"price"`
	ImageURL          string  `json:"image_url"`
	AllowsHalfAndHalf bool    `json:"allows_half_and_half"`
	IsActive          bool    `json:"is_active"`
}

type OptionGroupRequest struct {
	Name          string          `json:"name" binding:"required"`
	SelectionType SelectionType   `json:"selection_type" binding:"required,oneof=single multiple"`
	MinSelection  int             `json:"min_selection" binding:"gte=0"`
	MaxSelection  int             `json:"max_selection" binding:"gte=0"`
	PriceRule     PriceRule       `json:"price_rule" binding:"omitempty,oneof=sum highest average"`
	DisplayOrder  int             `json:"display_order"`
	Options       []OptionRequest `json:"options" binding:"required,min=1"`
}

type OptionRequest struct {
	Name         string  `json:"name" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	IsAvailable  bool    `json:"is_available"`
	DisplayOrder int     `json:"display_order"`
}

type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

// AddItemRequest is the two-phase cart mutation payload. Force confirms
// discarding a cart bound to another restaurant.
type AddItemRequest struct {
	RestaurantID int                 `json:"restaurant_id" binding:"required"`
	ProductID    int                 `json:"product_id" binding:"required"`
	Quantity     int                 `json:"quantity" binding:"required,gte=1"`
	Selections   []GroupSelection    `json:"selections"`
	HalfAndHalf  *HalfAndHalfRequest `json:"half_and_half,omitempty"`
	Observation  string              `json:"observation"`
	Force        bool                `json:"force"`
}

type GroupSelection struct {
	GroupID   int   `json:"group_id" binding:"required"`
	OptionIDs []int `json:"option_ids"`
}

type HalfAndHalfRequest struct {
	SecondProductID  int              `json:"second_product_id" binding:"required"`
	SecondSelections []GroupSelection `json:"second_selections"`
}

type CheckoutRequest struct {
	RestaurantID  int    `json:"restaurant_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required,min=2"`
	CustomerPhone string `json:"customer_phone" binding:"required,min=8"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	DeliveryType  string `json:"delivery_type" binding:"required,oneof=delivery pickup"`
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method" binding:"required"`
	Observation   string `json:"observation"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,oneof=new confirmed preparing out_for_delivery ready completed cancelled"`
}

type AgentChatRequest struct {
	RestaurantID int                `json:"restaurant_id" binding:"required"`
	SessionID    string             `json:"session_id" binding:"required"`
	Message      string             `json:"message" binding:"required"`
	History      []AgentChatMessage `json:"history"`
}

type AgentChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AgentChatResponse struct {
	Reply string `json:"reply"`
}
