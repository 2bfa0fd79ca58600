package realtime

import (
	"context"
	"log"
	"sync"

	"orderhub/models"
)

// OrderFetcher re-fetches the full joined order after an insert event, whose
// payload carries only the order number.
type OrderFetcher interface {
	GetOrderByNumber(ctx context.Context, restaurantID int, orderNumber string) (*models.Order, error)
}

// Notifier is the new-order alert hook (sound, toast, push). Failures are
// swallowed and logged; an alert must never break the sync.
type Notifier func(order *models.Order) error

// OrderSync maintains a live, newest-first view of one restaurant's orders
// from the change feed.
type OrderSync struct {
	restaurantID int
	fetcher      OrderFetcher
	notify       Notifier

	mu     sync.RWMutex
	orders []*models.Order
}

func NewOrderSync(restaurantID int, fetcher OrderFetcher, notify Notifier) *OrderSync {
	return &OrderSync{
		restaurantID: restaurantID,
		fetcher:      fetcher,
		notify:       notify,
	}
}

// Seed loads the initial order list, newest first.
func (s *OrderSync) Seed(orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make([]*models.Order, 0, len(orders))
	for i := range orders {
		o := orders[i]
		s.orders = append(s.orders, &o)
	}
}

// Orders returns a snapshot of the current view.
func (s *OrderSync) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out
}

// Apply merges one change event into the view and returns the affected
// order as it now reads. Inserts trigger exactly one re-fetch and one
// prepend; updates shallow-merge the changed columns into the matching
// record, leaving absent fields untouched. An update for an unknown order
// is a no-op and returns nil.
func (s *OrderSync) Apply(ctx context.Context, ev Event) (*models.Order, error) {
	switch ev.Kind {
	case EventInsert:
		order, err := s.fetcher.GetOrderByNumber(ctx, s.restaurantID, ev.OrderNumber)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.orders = append([]*models.Order{order}, s.orders...)
		s.mu.Unlock()

		if s.notify != nil {
			if err := s.notify(order); err != nil {
				log.Printf("Order notification failed for %s: %v", order.OrderNumber, err)
			}
		}

		merged := *order
		return &merged, nil
	case EventUpdate:
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, order := range s.orders {
			if order.OrderNumber == ev.OrderNumber {
				mergeColumns(order, ev.Columns)
				merged := *order
				return &merged, nil
			}
		}
	}
	return nil, nil
}

func mergeColumns(order *models.Order, columns map[string]interface{}) {
	for col, val := range columns {
		switch col {
		case "status":
			if v, ok := val.(string); ok {
				order.Status = v
			}
		case "payment_method":
			if v, ok := val.(string); ok {
				order.PaymentMethod = v
			}
		case "address":
			if v, ok := val.(string); ok {
				order.Address = v
			}
		case "observation":
			if v, ok := val.(string); ok {
				order.Observation = v
			}
		case "delivery_fee":
			if v, ok := val.(float64); ok {
				order.DeliveryFee = v
			}
		case "total":
			if v, ok := val.(float64); ok {
				order.Total = v
			}
		}
	}
}
