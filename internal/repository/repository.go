package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the persistence contract shared by every entity type.
type Repository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Add(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uint) (bool, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// Base implements Repository on top of gorm. Entity repositories embed it
// and add their own eager-loading queries.
type Base[T any] struct {
	db *gorm.DB
}

func NewBase[T any](db *gorm.DB) *Base[T] {
	return &Base[T]{db: db}
}

func (r *Base[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Base[T]) GetAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.DB(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, translate(err)
	}
	return entities, nil
}

// GetByID returns ErrNotFound when no row has the given id.
func (r *Base[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.DB(ctx).First(&entity, id).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func (r *Base[T]) Add(ctx context.Context, entity *T) error {
	return translate(r.DB(ctx).Create(entity).Error)
}

// Update writes every column of entity. Associations are left untouched.
func (r *Base[T]) Update(ctx context.Context, entity *T) error {
	return translate(r.DB(ctx).Omit(clause.Associations).Save(entity).Error)
}

// Delete hard-deletes the row and reports whether one existed.
func (r *Base[T]) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.DB(ctx).Delete(new(T), id)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Base[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func first[T any](q *gorm.DB) (*T, error) {
	var entity T
	if err := q.First(&entity).Error; err != nil {
		return nil, translate(err)
	}
	return &entity, nil
}

func find[T any](q *gorm.DB) ([]T, error) {
	var entities []T
	if err := q.Find(&entities).Error; err != nil {
		return nil, translate(err)
	}
	return entities, nil
}
