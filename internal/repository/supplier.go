package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Repository[models.Supplier]
	GetWithProducts(ctx context.Context) ([]models.Supplier, error)
}

type supplierRepo struct {
	*Base[models.Supplier]
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepo{Base: NewBase[models.Supplier](db)}
}

func (r *supplierRepo) GetWithProducts(ctx context.Context) ([]models.Supplier, error) {
	return find[models.Supplier](r.DB(ctx).Preload("Products").Order("id"))
}
