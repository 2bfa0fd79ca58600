package services

import (
	"context"
	"time"

	"orderhub/models"
	"orderhub/repositories"
)

// CartService owns the mutation contract for session carts. A cart is bound
// to at most one restaurant; switching requires an explicit force flag, which
// discards the previous items (two-phase confirm).
type CartService struct {
	store repositories.CartStore
}

func NewCartService(store repositories.CartStore) *CartService {
	return &CartService{store: store}
}

func (s *CartService) Get(ctx context.Context, key string) (*models.Cart, error) {
	return s.store.Load(ctx, key)
}

// AddItem appends a priced item. When the cart is bound to a different
// restaurant it returns ErrCartConflict and leaves the cart unchanged unless
// force is set, in which case prior items are discarded and the cart rebinds.
func (s *CartService) AddItem(ctx context.Context, key string, restaurantID int, item models.CartItem, force bool) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if cart.RestaurantID != 0 && cart.RestaurantID != restaurantID {
		if !force {
			return nil, models.ErrCartConflict
		}
		cart.Items = nil
	}

	cart.RestaurantID = restaurantID
	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops an item by id. Removing an unknown id is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, key, itemID string) (*models.Cart, error) {
	cart, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ID != itemID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now()

	if err := s.store.Save(ctx, key, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart and unbinds the restaurant.
func (s *CartService) Clear(ctx context.Context, key string) error {
	return s.store.Delete(ctx, key)
}
