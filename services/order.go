package services

import (
	"context"
	"log"
	"strings"
	"time"

	"orderhub/models"

	"github.com/google/uuid"
)

// OrderWriter persists the order aggregate. The implementation must write
// the header and all item snapshots atomically.
type OrderWriter interface {
	InsertOrderWithItems(ctx context.Context, order *models.Order) error
}

// OrderPublisher announces persisted orders on the realtime feed. Publishing
// is best-effort; a nil publisher disables it.
type OrderPublisher interface {
	PublishInsert(ctx context.Context, restaurantID int, order *models.Order) error
}

// ProductReader resolves a cart item's product so availability can be
// re-checked at submission time.
type ProductReader interface {
	GetProductByID(ctx context.Context, restaurantID, productID int) (*models.Product, error)
}

type SubmitOrderInput struct {
	RestaurantID  int
	CustomerID    int
	CustomerName  string
	CustomerPhone string
	Items         []models.CartItem
	DeliveryType  string
	Address       string
	PaymentMethod string
	DeliveryFee   float64
	Observation   string
}

// OrderService assembles cart contents plus customer data into a persisted
// order. The returned representation is built purely from the input because
// the submitting client has no permission to re-query the row it created.
type OrderService struct {
	writer    OrderWriter
	products  ProductReader
	publisher OrderPublisher
}

func NewOrderService(writer OrderWriter, products ProductReader, publisher OrderPublisher) *OrderService {
	return &OrderService{writer: writer, products: products, publisher: publisher}
}

func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (*models.Order, error) {
	if input.CustomerID == 0 {
		return nil, models.ErrMissingCustomer
	}
	if len(input.Items) == 0 {
		return nil, models.ErrEmptyCart
	}
	if input.DeliveryType == models.DeliveryTypeDelivery && strings.TrimSpace(input.Address) == "" {
		return nil, models.ErrMissingAddress
	}

	if err := s.checkAvailability(ctx, input.RestaurantID, input.Items); err != nil {
		return nil, err
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		subtotal += item.TotalPrice
		items = append(items, models.OrderItem{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitBasePrice,
			TotalPrice:      item.TotalPrice,
			SelectedOptions: item.SelectedOptions,
			HalfAndHalf:     item.HalfAndHalf,
			Observation:     item.Observation,
		})
	}

	now := time.Now()
	order := &models.Order{
		OrderNumber:   newOrderNumber(),
		RestaurantID:  input.RestaurantID,
		CustomerID:    input.CustomerID,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Status:        models.OrderStatusNew,
		DeliveryType:  input.DeliveryType,
		Address:       input.Address,
		PaymentMethod: input.PaymentMethod,
		Subtotal:      subtotal,
		DeliveryFee:   input.DeliveryFee,
		Total:         subtotal + input.DeliveryFee,
		Observation:   input.Observation,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.writer.InsertOrderWithItems(ctx, order); err != nil {
		return nil, &models.PersistenceError{Op: "insert order", Err: err}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishInsert(ctx, order.RestaurantID, order); err != nil {
			log.Printf("Failed to publish order %s to realtime feed: %v", order.OrderNumber, err)
		}
	}

	return order, nil
}

// checkAvailability re-verifies every product referenced by the cart,
// including both halves of a half-and-half item. A product deactivated
// between add-to-cart and checkout must not be snapshotted into an order.
func (s *OrderService) checkAvailability(ctx context.Context, restaurantID int, items []models.CartItem) error {
	if s.products == nil {
		return nil
	}

	seen := make(map[int]bool)
	check := func(productID int) error {
		if seen[productID] {
			return nil
		}
		seen[productID] = true

		product, err := s.products.GetProductByID(ctx, restaurantID, productID)
		if err != nil || !product.IsActive {
			return models.ErrProductUnavailable
		}
		return nil
	}

	for _, item := range items {
		if item.HalfAndHalf != nil {
			if err := check(item.HalfAndHalf.FirstProductID); err != nil {
				return err
			}
			if err := check(item.HalfAndHalf.SecondProductID); err != nil {
				return err
			}
			continue
		}
		if err := check(item.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}
