package services

import (
	"context"
	"testing"

	"orderhub/models"
	"orderhub/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, restaurantID int, total float64) models.CartItem {
	return models.CartItem{
		ID:          id,
		ProductID:   restaurantID*100 + 1,
		ProductName: "Item " + id,
		Quantity:    1,
		TotalPrice:  total,
	}
}

func TestAddItemBindsEmptyCart(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.RestaurantID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 12.50, cart.Total())
}

func TestAddItemConflictLeavesCartUnchanged(t *testing.T) {
	store := repositories.NewMemoryCartStore()
	svc := NewCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess-1", 9, item("b", 9, 4.00), false)
	assert.ErrorIs(t, err, models.ErrCartConflict)

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 7, cart.RestaurantID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "a", cart.Items[0].ID)
}

func TestAddItemForceDiscardsAndRebinds(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", 9, item("b", 9, 4.00), true)
	require.NoError(t, err)
	assert.Equal(t, 9, cart.RestaurantID)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "b", cart.Items[0].ID)
	assert.Equal(t, 4.00, cart.Total())
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "sess-1", "missing")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestRemoveItemDropsOnlyTheMatch(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "sess-1", 7, item("b", 7, 6.00), false)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "sess-1", "a")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "b", cart.Items[0].ID)
	assert.Equal(t, 6.00, cart.Total())
}

func TestCartTotalMatchesRecomputedItemPrices(t *testing.T) {
	pricing := NewPricingService()
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	burger := models.Product{
		ID:           1,
		Name:         "Burger",
		Price:        20.00,
		IsActive:     true,
		OptionGroups: []models.OptionGroup{sizeGroup(), extrasGroup()},
	}

	unitPrice, selected, err := pricing.UnitPrice(burger, []models.GroupSelection{
		{GroupID: 1, OptionIDs: []int{11}},
		{GroupID: 2, OptionIDs: []int{20, 21}},
	})
	require.NoError(t, err)

	_, err = svc.AddItem(ctx, "sess-1", 7, models.CartItem{
		ID:              "a",
		ProductID:       burger.ID,
		ProductName:     burger.Name,
		Quantity:        3,
		UnitBasePrice:   burger.Price,
		SelectedOptions: selected,
		TotalPrice:      pricing.LineTotal(unitPrice, 3),
	}, false)
	require.NoError(t, err)

	margherita := models.Product{ID: 2, Name: "Margherita", Price: 30.00, IsActive: true}
	pepperoni := models.Product{ID: 3, Name: "Pepperoni", Price: 35.00, IsActive: true,
		OptionGroups: []models.OptionGroup{extrasGroup()}}

	halfPrice, halfSelected, err := pricing.HalfAndHalfUnitPrice(margherita, pepperoni,
		nil, []models.GroupSelection{{GroupID: 2, OptionIDs: []int{21}}})
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "sess-1", 7, models.CartItem{
		ID:              "b",
		ProductID:       margherita.ID,
		ProductName:     margherita.Name,
		Quantity:        2,
		UnitBasePrice:   pepperoni.Price,
		SelectedOptions: halfSelected,
		HalfAndHalf: &models.HalfAndHalf{
			FirstProductID:  margherita.ID,
			FirstName:       margherita.Name,
			SecondProductID: pepperoni.ID,
			SecondName:      pepperoni.Name,
		},
		TotalPrice: pricing.LineTotal(halfPrice, 2),
	}, false)
	require.NoError(t, err)

	// Each stored item must price the same when recomputed from its own
	// snapshot: quantity x (unit base + selected option modifiers).
	var recomputed float64
	for _, item := range cart.Items {
		unit := item.UnitBasePrice
		for _, opt := range item.SelectedOptions {
			unit += opt.Price
		}
		recomputed += pricing.LineTotal(unit, item.Quantity)
	}
	assert.Equal(t, recomputed, cart.Total())
}

func TestClearEmptiesAndUnbinds(t *testing.T) {
	svc := NewCartService(repositories.NewMemoryCartStore())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "sess-1", 7, item("a", 7, 12.50), false)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "sess-1"))

	cart, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 0, cart.RestaurantID)
	assert.Empty(t, cart.Items)

	// After clearing, any restaurant may bind without force.
	cart, err = svc.AddItem(ctx, "sess-1", 9, item("c", 9, 4.00), false)
	require.NoError(t, err)
	assert.Equal(t, 9, cart.RestaurantID)
}
