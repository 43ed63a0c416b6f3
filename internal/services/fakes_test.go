package services

import (
	"context"
	"sort"

	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
)

// memRepo is an in-memory repository.Repository that counts writes.
type memRepo[T any] struct {
	rows    map[uint]T
	nextID  uint
	id      func(*T) *uint
	fail    error
	adds    int
	updates int
	deletes int
}

func newMemRepo[T any](id func(*T) *uint) *memRepo[T] {
	return &memRepo[T]{rows: map[uint]T{}, id: id}
}

func (r *memRepo[T]) GetAll(context.Context) ([]T, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	ids := make([]uint, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rows[id])
	}
	return out, nil
}

func (r *memRepo[T]) GetByID(_ context.Context, id uint) (*T, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	row, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (r *memRepo[T]) Add(_ context.Context, entity *T) error {
	if r.fail != nil {
		return r.fail
	}
	r.adds++
	r.nextID++
	*r.id(entity) = r.nextID
	r.rows[r.nextID] = *entity
	return nil
}

func (r *memRepo[T]) Update(_ context.Context, entity *T) error {
	if r.fail != nil {
		return r.fail
	}
	r.updates++
	r.rows[*r.id(entity)] = *entity
	return nil
}

func (r *memRepo[T]) Delete(_ context.Context, id uint) (bool, error) {
	if r.fail != nil {
		return false, r.fail
	}
	r.deletes++
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *memRepo[T]) Exists(_ context.Context, id uint) (bool, error) {
	if r.fail != nil {
		return false, r.fail
	}
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memRepo[T]) filter(keep func(T) bool) []T {
	all, _ := r.GetAll(context.Background())
	out := []T{}
	for _, row := range all {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func (r *memRepo[T]) firstWhere(keep func(T) bool) (*T, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	matches := r.filter(keep)
	if len(matches) == 0 {
		return nil, repository.ErrNotFound
	}
	return &matches[0], nil
}

type fakeUsers struct{ *memRepo[models.User] }

func newFakeUsers() *fakeUsers {
	return &fakeUsers{newMemRepo(func(u *models.User) *uint { return &u.ID })}
}

func (r *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.firstWhere(func(u models.User) bool { return u.Email == email })
}

type fakeInventory struct{ *memRepo[models.InventoryItem] }

func newFakeInventory() *fakeInventory {
	return &fakeInventory{newMemRepo(func(i *models.InventoryItem) *uint { return &i.ID })}
}

func (r *fakeInventory) GetWithProducts(ctx context.Context) ([]models.InventoryItem, error) {
	return r.GetAll(ctx)
}

func (r *fakeInventory) GetByProductID(_ context.Context, productID uint) (*models.InventoryItem, error) {
	return r.firstWhere(func(i models.InventoryItem) bool { return i.ProductID == productID })
}

func (r *fakeInventory) GetLowStock(context.Context) ([]models.InventoryItem, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	return r.filter(func(i models.InventoryItem) bool { return i.IsLowStock() }), nil
}

type fakeOrders struct{ *memRepo[models.Order] }

func newFakeOrders() *fakeOrders {
	return &fakeOrders{newMemRepo(func(o *models.Order) *uint { return &o.ID })}
}

func (r *fakeOrders) GetWithItems(ctx context.Context) ([]models.Order, error) {
	return r.GetAll(ctx)
}

func (r *fakeOrders) GetByIDWithItems(ctx context.Context, id uint) (*models.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrders) GetByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	return r.firstWhere(func(o models.Order) bool { return o.OrderNumber == orderNumber })
}

func (r *fakeOrders) GetByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	return r.filter(func(o models.Order) bool { return o.Status == status }), nil
}

type fakeProducts struct{ *memRepo[models.Product] }

func newFakeProducts() *fakeProducts {
	return &fakeProducts{newMemRepo(func(p *models.Product) *uint { return &p.ID })}
}

func (r *fakeProducts) GetWithDetails(ctx context.Context) ([]models.Product, error) {
	return r.GetAll(ctx)
}

func (r *fakeProducts) GetByIDWithDetails(ctx context.Context, id uint) (*models.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProducts) GetByCategory(_ context.Context, categoryID uint) ([]models.Product, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	return r.filter(func(p models.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *fakeProducts) GetBySKU(_ context.Context, sku string) (*models.Product, error) {
	return r.firstWhere(func(p models.Product) bool { return p.SKU == sku })
}

// fakeCategories returns deleteErr from Delete when it is set.
type fakeCategories struct {
	*memRepo[models.Category]
	deleteErr error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{memRepo: newMemRepo(func(c *models.Category) *uint { return &c.ID })}
}

func (r *fakeCategories) GetWithProducts(ctx context.Context) ([]models.Category, error) {
	return r.GetAll(ctx)
}

func (r *fakeCategories) Delete(ctx context.Context, id uint) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	return r.memRepo.Delete(ctx, id)
}

type fakeSuppliers struct {
	*memRepo[models.Supplier]
	deleteErr error
}

func newFakeSuppliers() *fakeSuppliers {
	return &fakeSuppliers{memRepo: newMemRepo(func(s *models.Supplier) *uint { return &s.ID })}
}

func (r *fakeSuppliers) GetWithProducts(ctx context.Context) ([]models.Supplier, error) {
	return r.GetAll(ctx)
}

func (r *fakeSuppliers) Delete(ctx context.Context, id uint) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	return r.memRepo.Delete(ctx, id)
}

type stockCall struct {
	productID uint
	delta     int
}

// recordingStock records every UpdateStock call. Products listed in missing
// report no inventory item.
type recordingStock struct {
	calls   []stockCall
	missing map[uint]bool
	err     error
}

func (s *recordingStock) UpdateStock(_ context.Context, productID uint, delta int) (bool, error) {
	s.calls = append(s.calls, stockCall{productID: productID, delta: delta})
	if s.err != nil {
		return false, s.err
	}
	return !s.missing[productID], nil
}

type recordingNotifier struct {
	items []models.InventoryItem
	err   error
}

func (n *recordingNotifier) NotifyLowStock(_ context.Context, item models.InventoryItem) error {
	n.items = append(n.items, item)
	return n.err
}

var (
	_ repository.UserRepository      = (*fakeUsers)(nil)
	_ repository.InventoryRepository = (*fakeInventory)(nil)
	_ repository.OrderRepository     = (*fakeOrders)(nil)
	_ repository.ProductRepository   = (*fakeProducts)(nil)
	_ repository.CategoryRepository  = (*fakeCategories)(nil)
	_ repository.SupplierRepository  = (*fakeSuppliers)(nil)
)
