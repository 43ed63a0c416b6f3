package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Repository[models.Category]
	GetWithProducts(ctx context.Context) ([]models.Category, error)
}

type categoryRepo struct {
	*Base[models.Category]
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{Base: NewBase[models.Category](db)}
}

func (r *categoryRepo) GetWithProducts(ctx context.Context) ([]models.Category, error) {
	return find[models.Category](r.DB(ctx).Preload("Products").Order("id"))
}
