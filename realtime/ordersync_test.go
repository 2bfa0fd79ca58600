package realtime

import (
	"context"
	"errors"
	"testing"

	"orderhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	orders map[string]*models.Order
	calls  int
}

func (f *fakeFetcher) GetOrderByNumber(ctx context.Context, restaurantID int, orderNumber string) (*models.Order, error) {
	f.calls++
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, errors.New("order not found")
	}
	copied := *order
	return &copied, nil
}

func seedOrders() []models.Order {
	return []models.Order{
		{OrderNumber: "ORD-BBBB2222", RestaurantID: 7, Status: models.OrderStatusConfirmed, Total: 40.00},
		{OrderNumber: "ORD-AAAA1111", RestaurantID: 7, Status: models.OrderStatusNew, Total: 71.00, Address: "Rua A, 10"},
	}
}

func TestApplyInsertFetchesOnceAndPrepends(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]*models.Order{
		"ORD-CCCC3333": {OrderNumber: "ORD-CCCC3333", RestaurantID: 7, Status: models.OrderStatusNew, Total: 12.00},
	}}

	var notified []*models.Order
	view := NewOrderSync(7, fetcher, func(o *models.Order) error {
		notified = append(notified, o)
		return nil
	})
	view.Seed(seedOrders())

	inserted, err := view.Apply(context.Background(), Event{
		Kind:         EventInsert,
		RestaurantID: 7,
		OrderNumber:  "ORD-CCCC3333",
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, "ORD-CCCC3333", inserted.OrderNumber)

	assert.Equal(t, 1, fetcher.calls)
	orders := view.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD-CCCC3333", orders[0].OrderNumber, "new order goes to the top")
	assert.Equal(t, "ORD-BBBB2222", orders[1].OrderNumber)

	require.Len(t, notified, 1)
	assert.Equal(t, "ORD-CCCC3333", notified[0].OrderNumber)
}

func TestApplyInsertSwallowsNotifierFailure(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]*models.Order{
		"ORD-CCCC3333": {OrderNumber: "ORD-CCCC3333", RestaurantID: 7},
	}}
	view := NewOrderSync(7, fetcher, func(o *models.Order) error {
		return errors.New("speaker unplugged")
	})

	_, err := view.Apply(context.Background(), Event{Kind: EventInsert, OrderNumber: "ORD-CCCC3333"})
	require.NoError(t, err)
	assert.Len(t, view.Orders(), 1, "the order is kept even when the alert fails")
}

func TestApplyInsertPropagatesFetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{orders: map[string]*models.Order{}}
	view := NewOrderSync(7, fetcher, nil)
	view.Seed(seedOrders())

	_, err := view.Apply(context.Background(), Event{Kind: EventInsert, OrderNumber: "ORD-GONE0000"})
	require.Error(t, err)
	assert.Len(t, view.Orders(), 2, "view untouched on a failed fetch")
}

func TestApplyUpdateMergesOnlyChangedColumns(t *testing.T) {
	view := NewOrderSync(7, &fakeFetcher{}, nil)
	view.Seed(seedOrders())

	merged, err := view.Apply(context.Background(), Event{
		Kind:        EventUpdate,
		OrderNumber: "ORD-AAAA1111",
		Columns:     map[string]interface{}{"status": models.OrderStatusPreparing},
	})
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, models.OrderStatusPreparing, merged.Status)

	orders := view.Orders()
	require.Len(t, orders, 2)
	updated := orders[1]
	assert.Equal(t, models.OrderStatusPreparing, updated.Status)
	assert.Equal(t, 71.00, updated.Total, "untouched columns keep their values")
	assert.Equal(t, "Rua A, 10", updated.Address)
}

func TestApplyUpdateUnknownOrderIsNoOp(t *testing.T) {
	fetcher := &fakeFetcher{}
	view := NewOrderSync(7, fetcher, nil)
	view.Seed(seedOrders())

	merged, err := view.Apply(context.Background(), Event{
		Kind:        EventUpdate,
		OrderNumber: "ORD-GONE0000",
		Columns:     map[string]interface{}{"status": models.OrderStatusCancelled},
	})
	require.NoError(t, err)
	assert.Nil(t, merged)
	assert.Zero(t, fetcher.calls, "updates never re-fetch")
	assert.Equal(t, seedOrders(), view.Orders())
}

func TestApplyUpdateIgnoresWrongTypes(t *testing.T) {
	view := NewOrderSync(7, &fakeFetcher{}, nil)
	view.Seed(seedOrders())

	_, err := view.Apply(context.Background(), Event{
		Kind:        EventUpdate,
		OrderNumber: "ORD-AAAA1111",
		Columns:     map[string]interface{}{"total": "not-a-number", "status": 42},
	})
	require.NoError(t, err)

	orders := view.Orders()
	assert.Equal(t, 71.00, orders[1].Total)
	assert.Equal(t, models.OrderStatusNew, orders[1].Status)
}
