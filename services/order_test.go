package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"orderhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderWriter struct {
	inserted []*models.Order
	err      error
}

func (f *fakeOrderWriter) InsertOrderWithItems(ctx context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, order)
	return nil
}

type fakeOrderPublisher struct {
	published []*models.Order
	err       error
}

func (f *fakeOrderPublisher) PublishInsert(ctx context.Context, restaurantID int, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}

// fakeProductReader treats every product as active unless listed as inactive.
type fakeProductReader struct {
	inactive map[int]bool
}

func (f *fakeProductReader) GetProductByID(ctx context.Context, restaurantID, productID int) (*models.Product, error) {
	return &models.Product{ID: productID, RestaurantID: restaurantID, IsActive: !f.inactive[productID]}, nil
}

func newTestOrderService(writer *fakeOrderWriter, publisher *fakeOrderPublisher) *OrderService {
	if publisher == nil {
		return NewOrderService(writer, &fakeProductReader{}, nil)
	}
	return NewOrderService(writer, &fakeProductReader{}, publisher)
}

func submitInput() SubmitOrderInput {
	return SubmitOrderInput{
		RestaurantID:  7,
		CustomerID:    42,
		CustomerName:  "Ana",
		CustomerPhone: "+551199990000",
		Items: []models.CartItem{
			{ProductID: 1, ProductName: "Burger", Quantity: 2, UnitBasePrice: 28.50, TotalPrice: 57.00},
			{ProductID: 2, ProductName: "Fries", Quantity: 1, UnitBasePrice: 9.00, TotalPrice: 9.00},
		},
		DeliveryType:  models.DeliveryTypeDelivery,
		Address:       "Rua A, 10",
		PaymentMethod: "pix",
		DeliveryFee:   5.00,
	}
}

func TestSubmitRejectsMissingCustomerBeforePersisting(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := newTestOrderService(writer, nil)

	input := submitInput()
	input.CustomerID = 0

	_, err := svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrMissingCustomer)
	assert.Empty(t, writer.inserted)
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := newTestOrderService(writer, nil)

	input := submitInput()
	input.Items = nil

	_, err := svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Empty(t, writer.inserted)
}

func TestSubmitRequiresAddressForDelivery(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := newTestOrderService(writer, nil)

	input := submitInput()
	input.Address = "   "

	_, err := svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrMissingAddress)
	assert.Empty(t, writer.inserted)
}

func TestSubmitAllowsPickupWithoutAddress(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := newTestOrderService(writer, nil)

	input := submitInput()
	input.DeliveryType = models.DeliveryTypePickup
	input.Address = ""
	input.DeliveryFee = 0

	order, err := svc.Submit(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 66.00, order.Total)
}

func TestSubmitAssemblesOrderFromInput(t *testing.T) {
	writer := &fakeOrderWriter{}
	publisher := &fakeOrderPublisher{}
	svc := newTestOrderService(writer, publisher)

	order, err := svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusNew, order.Status)
	assert.Equal(t, 66.00, order.Subtotal)
	assert.Equal(t, 5.00, order.DeliveryFee)
	assert.Equal(t, 71.00, order.Total)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Burger", order.Items[0].ProductName)
	assert.Equal(t, 28.50, order.Items[0].UnitPrice)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Len(t, order.OrderNumber, 12)
	assert.Equal(t, strings.ToUpper(order.OrderNumber), order.OrderNumber)

	require.Len(t, writer.inserted, 1)
	require.Len(t, publisher.published, 1)
	assert.Same(t, order, publisher.published[0])
}

func TestSubmitWrapsWriterFailure(t *testing.T) {
	writer := &fakeOrderWriter{err: errors.New("connection reset")}
	publisher := &fakeOrderPublisher{}
	svc := newTestOrderService(writer, publisher)

	_, err := svc.Submit(context.Background(), submitInput())

	var persistErr *models.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, "insert order", persistErr.Op)
	assert.Empty(t, publisher.published, "nothing may be announced when the write failed")
}

func TestSubmitSurvivesPublisherFailure(t *testing.T) {
	writer := &fakeOrderWriter{}
	publisher := &fakeOrderPublisher{err: errors.New("feed down")}
	svc := newTestOrderService(writer, publisher)

	order, err := svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	assert.NotNil(t, order)
	require.Len(t, writer.inserted, 1)
}

func TestSubmitRejectsDeactivatedProduct(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := NewOrderService(writer, &fakeProductReader{inactive: map[int]bool{1: true}}, nil)

	_, err := svc.Submit(context.Background(), submitInput())
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
	assert.Empty(t, writer.inserted, "a stale cart item must not be snapshotted")
}

func TestSubmitRejectsDeactivatedHalfAndHalfHalf(t *testing.T) {
	writer := &fakeOrderWriter{}
	svc := NewOrderService(writer, &fakeProductReader{inactive: map[int]bool{9: true}}, nil)

	input := submitInput()
	input.Items = []models.CartItem{
		{
			ProductID:     8,
			ProductName:   "Margherita",
			Quantity:      1,
			UnitBasePrice: 35.00,
			TotalPrice:    35.00,
			HalfAndHalf: &models.HalfAndHalf{
				FirstProductID:  8,
				FirstName:       "Margherita",
				SecondProductID: 9,
				SecondName:      "Pepperoni",
			},
		},
	}

	_, err := svc.Submit(context.Background(), input)
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
	assert.Empty(t, writer.inserted)
}

func TestOrderNumbersAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := newOrderNumber()
		assert.False(t, seen[n])
		seen[n] = true
	}
}
