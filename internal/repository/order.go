package repository

import (
	"context"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Repository[models.Order]
	GetWithItems(ctx context.Context) ([]models.Order, error)
	GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error)
	GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	GetByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
}

type orderRepo struct {
	*Base[models.Order]
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepo{Base: NewBase[models.Order](db)}
}

func (r *orderRepo) withItems(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Preload("Items.Product")
}

func (r *orderRepo) GetWithItems(ctx context.Context) ([]models.Order, error) {
	return find[models.Order](r.withItems(ctx).Order("id"))
}

func (r *orderRepo) GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error) {
	return first[models.Order](r.withItems(ctx).Where("id = ?", id))
}

func (r *orderRepo) GetByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	return first[models.Order](r.withItems(ctx).Where("order_number = ?", orderNumber))
}

func (r *orderRepo) GetByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	return find[models.Order](r.withItems(ctx).Where("status = ?", status).Order("id"))
}
