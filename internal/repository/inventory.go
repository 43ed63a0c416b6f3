package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type InventoryRepository interface {
	Repository[models.InventoryItem]
	GetWithProducts(ctx context.Context) ([]models.InventoryItem, error)
	GetByProductID(ctx context.Context, productID uint) (*models.InventoryItem, error)
	GetLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

type inventoryRepo struct {
	*Base[models.InventoryItem]
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{Base: NewBase[models.InventoryItem](db)}
}

func (r *inventoryRepo) GetWithProducts(ctx context.Context) ([]models.InventoryItem, error) {
	return find[models.InventoryItem](r.DB(ctx).
		Preload("Product.Category").
		Preload("Product.Supplier").
		Order("id"))
}

func (r *inventoryRepo) GetByProductID(ctx context.Context, productID uint) (*models.InventoryItem, error) {
	return first[models.InventoryItem](r.DB(ctx).
		Preload("Product").
		Where("product_id = ?", productID))
}

func (r *inventoryRepo) GetLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	return find[models.InventoryItem](r.DB(ctx).
		Preload("Product").
		Where("quantity <= minimum_stock").
		Order("id"))
}
