package services

import (
	"context"
	"errors"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
	"github.com/SivakumaranJathurshan/CourseWork/internal/telemetry"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// LowStockNotifier is told about items whose quantity has dropped to or
// below their minimum stock level.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, item models.InventoryItem) error
}

type InventoryService struct {
	repo     repository.InventoryRepository
	notifier LowStockNotifier
	log      zerolog.Logger
	now      func() time.Time
}

// NewInventoryService builds the service. notifier may be nil.
func NewInventoryService(repo repository.InventoryRepository, notifier LowStockNotifier, log zerolog.Logger) *InventoryService {
	return &InventoryService{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      utcNow,
	}
}

type CreateInventoryItemInput struct {
	ProductID    uint `json:"product_id" validate:"required"`
	Quantity     int  `json:"quantity"`
	MinimumStock int  `json:"minimum_stock" validate:"gte=0"`
	MaximumStock int  `json:"maximum_stock" validate:"gte=0"`
}

type UpdateInventoryItemInput struct {
	Quantity     int `json:"quantity"`
	MinimumStock int `json:"minimum_stock" validate:"gte=0"`
	MaximumStock int `json:"maximum_stock" validate:"gte=0"`
}

func (s *InventoryService) GetAll(ctx context.Context) ([]models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.get_all")
	defer span.End()

	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "inventory.get_all", err)
	}
	return items, nil
}

func (s *InventoryService) GetWithProducts(ctx context.Context) ([]models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.get_with_products")
	defer span.End()

	items, err := s.repo.GetWithProducts(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "inventory.get_with_products", err)
	}
	return items, nil
}

func (s *InventoryService) GetByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("inventory.id", int64(id)))

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "inventory.get_by_id", err, ErrInventoryNotFound)
	}
	return item, nil
}

func (s *InventoryService) GetByProductID(ctx context.Context, productID uint) (*models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.get_by_product")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(productID)))

	item, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, lookup(ctx, s.log, "inventory.get_by_product", err, ErrInventoryNotFound)
	}
	return item, nil
}

// GetLowStockItems returns the items whose quantity is at or below their minimum stock.
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.get_low_stock")
	defer span.End()

	items, err := s.repo.GetLowStock(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "inventory.get_low_stock", err)
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

func (s *InventoryService) Create(ctx context.Context, input CreateInventoryItemInput) (*models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.create")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(input.ProductID)))

	now := s.now()
	item := models.InventoryItem{
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		MinimumStock:  input.MinimumStock,
		MaximumStock:  input.MaximumStock,
		LastRestocked: now,
		CreatedDate:   now,
		UpdatedDate:   now,
	}

	if err := s.repo.Add(ctx, &item); err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return nil, ErrProductNotFound
		}
		return nil, internal(ctx, s.log, "inventory.create", err)
	}

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("inventory_id", item.ID).
		Uint("product_id", item.ProductID).
		Int("quantity", item.Quantity).
		Msg("inventory item created")

	return &item, nil
}

// Update overwrites the stock levels of an existing item. A missing id
// returns ErrInventoryNotFound without writing.
func (s *InventoryService) Update(ctx context.Context, id uint, input UpdateInventoryItemInput) (*models.InventoryItem, error) {
	ctx, span := tracer.Start(ctx, "inventory.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("inventory.id", int64(id)))

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "inventory.update", err, ErrInventoryNotFound)
	}

	item.Quantity = input.Quantity
	item.MinimumStock = input.MinimumStock
	item.MaximumStock = input.MaximumStock
	item.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, internal(ctx, s.log, "inventory.update", err)
	}

	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "inventory.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("inventory.id", int64(id)))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, internal(ctx, s.log, "inventory.delete", err)
	}
	return deleted, nil
}

// UpdateStock adds delta to the quantity of the product's inventory item and
// reports false when the product has no inventory item. The quantity is not
// floored at zero.
func (s *InventoryService) UpdateStock(ctx context.Context, productID uint, delta int) (bool, error) {
	ctx, span := tracer.Start(ctx, "inventory.update_stock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", int64(productID)),
		attribute.Int("stock.delta", delta),
	)

	item, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, internal(ctx, s.log, "inventory.update_stock", err)
	}

	now := s.now()
	item.Quantity += delta
	item.LastRestocked = now
	item.UpdatedDate = now

	if err := s.repo.Update(ctx, item); err != nil {
		return false, internal(ctx, s.log, "inventory.update_stock", err)
	}

	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	telemetry.StockAdjustments.WithLabelValues(direction).Inc()

	span.SetAttributes(attribute.Int("stock.quantity", item.Quantity))

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("product_id", productID).
		Int("delta", delta).
		Int("quantity", item.Quantity).
		Msg("stock updated")

	if item.Quantity < 0 {
		l.Warn().
			Uint("product_id", productID).
			Int("quantity", item.Quantity).
			Msg("stock is negative")
	}

	if item.IsLowStock() && s.notifier != nil {
		if err := s.notifier.NotifyLowStock(ctx, *item); err != nil {
			l.Error().Err(err).Uint("product_id", productID).Msg("failed to enqueue low stock alert")
		}
	}

	return true, nil
}
