package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

var ErrUnknownCategoryOrSupplier = fmt.Errorf("%w: category or supplier does not exist", ErrValidation)

type ProductService struct {
	repo repository.ProductRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewProductService(repo repository.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log, now: utcNow}
}

type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	SKU         string          `json:"sku" validate:"required,max=50"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  uint            `json:"category_id" validate:"required"`
	SupplierID  uint            `json:"supplier_id" validate:"required"`
}

func (s *ProductService) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get_all")
	defer span.End()

	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "product.get_all", err)
	}
	return products, nil
}

// GetWithDetails returns every product with its category, supplier and inventory items.
func (s *ProductService) GetWithDetails(ctx context.Context) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get_with_details")
	defer span.End()

	products, err := s.repo.GetWithDetails(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "product.get_with_details", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := s.repo.GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "product.get_by_id", err, ErrProductNotFound)
	}
	return product, nil
}

func (s *ProductService) GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get_by_category")
	defer span.End()

	span.SetAttributes(attribute.Int64("category.id", int64(categoryID)))

	products, err := s.repo.GetByCategory(ctx, categoryID)
	if err != nil {
		return nil, internal(ctx, s.log, "product.get_by_category", err)
	}
	return products, nil
}

func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.get_by_sku")
	defer span.End()

	span.SetAttributes(attribute.String("product.sku", sku))

	product, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, lookup(ctx, s.log, "product.get_by_sku", err, ErrProductNotFound)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.create")
	defer span.End()

	span.SetAttributes(attribute.String("product.sku", input.SKU))

	if err := s.checkSKU(ctx, input.SKU, 0); err != nil {
		return nil, err
	}

	now := s.now()
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		SKU:         input.SKU,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		SupplierID:  input.SupplierID,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := s.repo.Add(ctx, &product); err != nil {
		return nil, s.writeError(ctx, "product.create", err)
	}

	l := logging.Span(ctx, s.log)
	l.Info().
		Uint("product_id", product.ID).
		Str("sku", product.SKU).
		Msg("product created")

	return &product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	ctx, span := tracer.Start(ctx, "product.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "product.update", err, ErrProductNotFound)
	}

	if input.SKU != product.SKU {
		if err := s.checkSKU(ctx, input.SKU, id); err != nil {
			return nil, err
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.SKU = input.SKU
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	product.SupplierID = input.SupplierID
	product.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, s.writeError(ctx, "product.update", err)
	}
	return product, nil
}

// Delete refuses to remove a product that appears on an order. Its
// inventory items are removed with it.
func (s *ProductService) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "product.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return false, ErrProductInUse
		}
		return false, internal(ctx, s.log, "product.delete", err)
	}
	return deleted, nil
}

// checkSKU fails with ErrDuplicateSKU when a product other than selfID owns sku.
func (s *ProductService) checkSKU(ctx context.Context, sku string, selfID uint) error {
	existing, err := s.repo.GetBySKU(ctx, sku)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return internal(ctx, s.log, "product.check_sku", err)
	case existing.ID != selfID:
		return ErrDuplicateSKU
	}
	return nil
}

func (s *ProductService) writeError(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicateSKU
	case errors.Is(err, repository.ErrReferenced):
		return ErrUnknownCategoryOrSupplier
	}
	return internal(ctx, s.log, op, err)
}
