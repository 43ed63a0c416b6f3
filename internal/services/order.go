package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
	"github.com/SivakumaranJathurshan/CourseWork/internal/telemetry"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StockUpdater applies signed quantity deltas to a product's inventory.
type StockUpdater interface {
	UpdateStock(ctx context.Context, productID uint, delta int) (bool, error)
}

var ordersCreatedCounter metric.Int64Counter

type OrderService struct {
	repo  repository.OrderRepository
	stock StockUpdater
	log   zerolog.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

func NewOrderService(repo repository.OrderRepository, stock StockUpdater, log zerolog.Logger) *OrderService {
	var err error
	ordersCreatedCounter, err = meter.Int64Counter(
		"orders.created",
		metric.WithDescription("Total number of orders created"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create orders counter")
	}

	return &OrderService{
		repo:  repo,
		stock: stock,
		log:   log,
		now:   utcNow,
		newID: uuid.New,
	}
}

type OrderItemInput struct {
	ProductID uint            `json:"product_id" validate:"required"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	// TotalPrice defaults to UnitPrice * Quantity when zero.
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CreateOrderInput struct {
	CustomerName    string             `json:"customer_name" validate:"required,max=100"`
	CustomerAddress string             `json:"customer_address" validate:"max=200"`
	CustomerPhone   string             `json:"customer_phone" validate:"max=15"`
	Status          models.OrderStatus `json:"status"`
	Items           []OrderItemInput   `json:"order_items" validate:"required,min=1,dive"`
}

type UpdateOrderInput struct {
	CustomerName    string             `json:"customer_name" validate:"required,max=100"`
	CustomerAddress string             `json:"customer_address" validate:"max=200"`
	CustomerPhone   string             `json:"customer_phone" validate:"max=15"`
	Status          models.OrderStatus `json:"status"`
}

func (s *OrderService) GetAll(ctx context.Context) ([]models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.get_all")
	defer span.End()

	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "order.get_all", err)
	}
	return orders, nil
}

func (s *OrderService) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("order.id", int64(id)))

	order, err := s.repo.GetByIDWithItems(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "order.get_by_id", err, ErrOrderNotFound)
	}
	return order, nil
}

func (s *OrderService) GetOrdersWithItems(ctx context.Context) ([]models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.get_with_items")
	defer span.End()

	orders, err := s.repo.GetWithItems(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "order.get_with_items", err)
	}
	return orders, nil
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.get_by_number")
	defer span.End()

	span.SetAttributes(attribute.String("order.number", orderNumber))

	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, lookup(ctx, s.log, "order.get_by_number", err, ErrOrderNotFound)
	}
	return order, nil
}

func (s *OrderService) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.get_by_status")
	defer span.End()

	span.SetAttributes(attribute.String("order.status", status.String()))

	orders, err := s.repo.GetByStatus(ctx, status)
	if err != nil {
		return nil, internal(ctx, s.log, "order.get_by_status", err)
	}
	return orders, nil
}

// CreateOrder persists the order and then decrements stock for each item in
// order. The two steps are not atomic: if a decrement fails the order stays
// committed and ErrInternal is returned alongside it.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.create")
	defer span.End()

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	status := input.Status
	if status == 0 {
		status = models.OrderStatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		total := in.TotalPrice
		if total.IsZero() {
			total = in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		}
		items = append(items, models.OrderItem{
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
			TotalPrice: total,
		})
	}

	now := s.now()
	order := models.Order{
		OrderNumber:     s.generateOrderNumber(now),
		CustomerName:    input.CustomerName,
		CustomerAddress: input.CustomerAddress,
		CustomerPhone:   input.CustomerPhone,
		Status:          status,
		TotalAmount:     orderTotal(items),
		OrderDate:       now,
		CreatedDate:     now,
		UpdatedDate:     now,
		Items:           items,
	}

	span.SetAttributes(
		attribute.String("order.number", order.OrderNumber),
		attribute.Int("order.items", len(items)),
		attribute.String("order.total", order.TotalAmount.String()),
	)

	if err := s.repo.Add(ctx, &order); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: order number %s already exists", ErrConflict, order.OrderNumber)
		case errors.Is(err, repository.ErrReferenced):
			return nil, ErrProductNotFound
		}
		return nil, internal(ctx, s.log, "order.create", err)
	}

	if ordersCreatedCounter != nil {
		ordersCreatedCounter.Add(ctx, 1)
	}
	telemetry.OrdersPlaced.Inc()

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("total", order.TotalAmount.String()).
		Msg("order created")

	for _, item := range order.Items {
		updated, err := s.stock.UpdateStock(ctx, item.ProductID, -item.Quantity)
		if err != nil {
			l.Error().
				Err(err).
				Str("order_number", order.OrderNumber).
				Uint("product_id", item.ProductID).
				Msg("stock decrement failed after order was committed")
			return &order, ErrInternal
		}
		if !updated {
			l.Warn().
				Str("order_number", order.OrderNumber).
				Uint("product_id", item.ProductID).
				Msg("no inventory item for ordered product")
		}
	}

	return &order, nil
}

func (s *OrderService) Update(ctx context.Context, id uint, input UpdateOrderInput) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "order.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("order.id", int64(id)))

	if input.Status != 0 && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "order.update", err, ErrOrderNotFound)
	}

	order.CustomerName = input.CustomerName
	order.CustomerAddress = input.CustomerAddress
	order.CustomerPhone = input.CustomerPhone
	if input.Status != 0 {
		order.Status = input.Status
	}
	order.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, order); err != nil {
		return nil, internal(ctx, s.log, "order.update", err)
	}

	return order, nil
}

// UpdateOrderStatus reports false when no order has the given id.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (bool, error) {
	ctx, span := tracer.Start(ctx, "order.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order.id", int64(id)),
		attribute.String("order.status", status.String()),
	)

	if !status.Valid() {
		return false, ErrInvalidStatus
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, internal(ctx, s.log, "order.update_status", err)
	}

	previous := order.Status
	order.Status = status
	order.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, order); err != nil {
		return false, internal(ctx, s.log, "order.update_status", err)
	}

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("order_id", id).
		Str("from", previous.String()).
		Str("to", status.String()).
		Msg("order status updated")

	return true, nil
}

func (s *OrderService) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "order.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("order.id", int64(id)))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, internal(ctx, s.log, "order.delete", err)
	}
	return deleted, nil
}

// generateOrderNumber formats ORD-yyyyMMdd-XXXXXXXX from the UTC date and the
// first eight hex digits of a random UUID.
func (s *OrderService) generateOrderNumber(now time.Time) string {
	id := strings.ReplaceAll(s.newID().String(), "-", "")
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(id[:8]))
}

func orderTotal(items []models.OrderItem) decimal.Decimal {
	return lo.Reduce(items, func(sum decimal.Decimal, item models.OrderItem, _ int) decimal.Decimal {
		return sum.Add(item.TotalPrice)
	}, decimal.Zero)
}
