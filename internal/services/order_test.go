package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

func newTestOrders(repo *fakeOrders, stock StockUpdater) *OrderService {
	svc := NewOrderService(repo, stock, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func twoItemOrder() CreateOrderInput {
	return CreateOrderInput{
		CustomerName:    "Grace Hopper",
		CustomerAddress: "1 Harbour Road",
		CustomerPhone:   "0771234567",
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

func TestCreateOrderTotalsAndDecrementsStock(t *testing.T) {
	repo := newFakeOrders()
	stock := &recordingStock{}
	svc := newTestOrders(repo, stock)

	order, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(30).Equal(order.TotalAmount), "total %s", order.TotalAmount)
	assert.True(t, decimal.NewFromInt(20).Equal(order.Items[0].TotalPrice))
	assert.True(t, decimal.NewFromInt(10).Equal(order.Items[1].TotalPrice))
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, fixedNow, order.OrderDate)
	assert.Equal(t, fixedNow, order.CreatedDate)

	assert.Equal(t, []stockCall{{productID: 1, delta: -2}, {productID: 2, delta: -1}}, stock.calls)
	assert.Equal(t, 1, repo.adds)
}

func TestCreateOrderKeepsGivenItemTotal(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	input := twoItemOrder()
	input.Items[0].TotalPrice = decimal.RequireFromString("15.50")

	order, err := svc.CreateOrder(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.50").Equal(order.TotalAmount))
}

func TestOrderNumberFormat(t *testing.T) {
	svc := newTestOrders(newFakeOrders(), &recordingStock{})
	svc.newID = func() uuid.UUID { return uuid.MustParse("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed") }

	assert.Equal(t, "ORD-20240315-1B9D6BCD", svc.generateOrderNumber(fixedNow))
}

func TestCreateOrderRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
		want   error
	}{
		{name: "no items", mutate: func(in *CreateOrderInput) { in.Items = nil }, want: ErrEmptyOrder},
		{name: "unknown status", mutate: func(in *CreateOrderInput) { in.Status = 99 }, want: ErrInvalidStatus},
		{name: "zero quantity", mutate: func(in *CreateOrderInput) { in.Items[1].Quantity = 0 }, want: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrders()
			stock := &recordingStock{}
			svc := newTestOrders(repo, stock)

			input := twoItemOrder()
			tt.mutate(&input)

			order, err := svc.CreateOrder(context.Background(), input)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Zero(t, repo.adds)
			assert.Empty(t, stock.calls)
		})
	}
}

func TestCreateOrderWithoutInventoryItem(t *testing.T) {
	repo := newFakeOrders()
	stock := &recordingStock{missing: map[uint]bool{2: true}}
	svc := newTestOrders(repo, stock)

	order, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, stock.calls, 2)
}

func TestCreateOrderStockFailureKeepsOrder(t *testing.T) {
	repo := newFakeOrders()
	stock := &recordingStock{err: errors.New("deadlock")}
	svc := newTestOrders(repo, stock)

	order, err := svc.CreateOrder(context.Background(), twoItemOrder())
	assert.ErrorIs(t, err, ErrInternal)
	require.NotNil(t, order)
	assert.Len(t, stock.calls, 1)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestGetOrderByNumberAndStatus(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	first, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)

	shipped := twoItemOrder()
	shipped.Status = models.OrderStatusShipped
	_, err = svc.CreateOrder(context.Background(), shipped)
	require.NoError(t, err)

	found, err := svc.GetOrderByNumber(context.Background(), first.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = svc.GetOrderByNumber(context.Background(), "ORD-00000000-00000000")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	orders, err := svc.GetOrdersByStatus(context.Background(), models.OrderStatusShipped)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusShipped, orders[0].Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	ok, err := svc.UpdateOrderStatus(context.Background(), 5, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, repo.updates)

	order, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)

	_, err = svc.UpdateOrderStatus(context.Background(), order.ID, models.OrderStatus(15))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	ok, err = svc.UpdateOrderStatus(context.Background(), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := svc.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
}

func TestUpdateOrderMissing(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	order, err := svc.Update(context.Background(), 3, UpdateOrderInput{CustomerName: "Nobody"})
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Zero(t, repo.updates)
}

func TestUpdateOrderOverwritesCustomer(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	created, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, UpdateOrderInput{
		CustomerName: "Katherine Johnson",
		Status:       models.OrderStatusProcessing,
	})
	require.NoError(t, err)
	assert.Equal(t, "Katherine Johnson", updated.CustomerName)
	assert.Empty(t, updated.CustomerAddress)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	assert.Equal(t, created.OrderNumber, updated.OrderNumber)
}

func TestDeleteOrder(t *testing.T) {
	repo := newFakeOrders()
	svc := newTestOrders(repo, &recordingStock{})

	deleted, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, deleted)

	order, err := svc.CreateOrder(context.Background(), twoItemOrder())
	require.NoError(t, err)

	deleted, err = svc.Delete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}
