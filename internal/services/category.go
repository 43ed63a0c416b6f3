package services

import (
	"context"
	"errors"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

type CategoryService struct {
	repo repository.CategoryRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewCategoryService(repo repository.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log, now: utcNow}
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	ctx, span := tracer.Start(ctx, "category.get_all")
	defer span.End()

	categories, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "category.get_all", err)
	}
	return categories, nil
}

func (s *CategoryService) GetWithProducts(ctx context.Context) ([]models.Category, error) {
	ctx, span := tracer.Start(ctx, "category.get_with_products")
	defer span.End()

	categories, err := s.repo.GetWithProducts(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "category.get_with_products", err)
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	ctx, span := tracer.Start(ctx, "category.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("category.id", int64(id)))

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "category.get_by_id", err, ErrCategoryNotFound)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	ctx, span := tracer.Start(ctx, "category.create")
	defer span.End()

	now := s.now()
	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
		CreatedDate: now,
		UpdatedDate: now,
	}

	if err := s.repo.Add(ctx, &category); err != nil {
		return nil, internal(ctx, s.log, "category.create", err)
	}

	l := logging.Span(ctx, s.log)
	l.Info().Uint("category_id", category.ID).Str("name", category.Name).Msg("category created")

	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	ctx, span := tracer.Start(ctx, "category.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("category.id", int64(id)))

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "category.update", err, ErrCategoryNotFound)
	}

	category.Name = input.Name
	category.Description = input.Description
	category.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, internal(ctx, s.log, "category.update", err)
	}
	return category, nil
}

// Delete refuses to remove a category that still has products.
func (s *CategoryService) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "category.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("category.id", int64(id)))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return false, ErrCategoryInUse
		}
		return false, internal(ctx, s.log, "category.delete", err)
	}
	return deleted, nil
}
