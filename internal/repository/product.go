package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Repository[models.Product]
	GetWithDetails(ctx context.Context) ([]models.Product, error)
	GetByIDWithDetails(ctx context.Context, id uint) (*models.Product, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	GetBySKU(ctx context.Context, sku string) (*models.Product, error)
}

type productRepo struct {
	*Base[models.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{Base: NewBase[models.Product](db)}
}

func (r *productRepo) details(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Category").
		Preload("Supplier").
		Preload("InventoryItems")
}

func (r *productRepo) GetWithDetails(ctx context.Context) ([]models.Product, error) {
	return find[models.Product](r.details(ctx).Order("id"))
}

func (r *productRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.Product, error) {
	return first[models.Product](r.details(ctx).Where("id = ?", id))
}

func (r *productRepo) GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	return find[models.Product](r.DB(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("category_id = ?", categoryID).
		Order("id"))
}

func (r *productRepo) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	return first[models.Product](r.DB(ctx).
		Preload("Category").
		Preload("Supplier").
		Where("sku = ?", sku))
}
