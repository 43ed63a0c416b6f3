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

type SupplierService struct {
	repo repository.SupplierRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSupplierService(repo repository.SupplierRepository, log zerolog.Logger) *SupplierService {
	return &SupplierService{repo: repo, log: log, now: utcNow}
}

type SupplierInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	ContactPerson string `json:"contact_person" validate:"max=100"`
	Phone         string `json:"phone" validate:"max=15"`
	Email         string `json:"email" validate:"omitempty,email,max=100"`
	Address       string `json:"address" validate:"max=200"`
}

func (s *SupplierService) GetAll(ctx context.Context) ([]models.Supplier, error) {
	ctx, span := tracer.Start(ctx, "supplier.get_all")
	defer span.End()

	suppliers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "supplier.get_all", err)
	}
	return suppliers, nil
}

func (s *SupplierService) GetWithProducts(ctx context.Context) ([]models.Supplier, error) {
	ctx, span := tracer.Start(ctx, "supplier.get_with_products")
	defer span.End()

	suppliers, err := s.repo.GetWithProducts(ctx)
	if err != nil {
		return nil, internal(ctx, s.log, "supplier.get_with_products", err)
	}
	return suppliers, nil
}

func (s *SupplierService) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	ctx, span := tracer.Start(ctx, "supplier.get_by_id")
	defer span.End()

	span.SetAttributes(attribute.Int64("supplier.id", int64(id)))

	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "supplier.get_by_id", err, ErrSupplierNotFound)
	}
	return supplier, nil
}

func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*models.Supplier, error) {
	ctx, span := tracer.Start(ctx, "supplier.create")
	defer span.End()

	now := s.now()
	supplier := models.Supplier{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		CreatedDate:   now,
		UpdatedDate:   now,
	}

	if err := s.repo.Add(ctx, &supplier); err != nil {
		return nil, internal(ctx, s.log, "supplier.create", err)
	}

	l := logging.Span(ctx, s.log)
	l.Info().Uint("supplier_id", supplier.ID).Str("name", supplier.Name).Msg("supplier created")

	return &supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, input SupplierInput) (*models.Supplier, error) {
	ctx, span := tracer.Start(ctx, "supplier.update")
	defer span.End()

	span.SetAttributes(attribute.Int64("supplier.id", int64(id)))

	supplier, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(ctx, s.log, "supplier.update", err, ErrSupplierNotFound)
	}

	supplier.Name = input.Name
	supplier.ContactPerson = input.ContactPerson
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.UpdatedDate = s.now()

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, internal(ctx, s.log, "supplier.update", err)
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "supplier.delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("supplier.id", int64(id)))

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReferenced) {
			return false, ErrSupplierInUse
		}
		return false, internal(ctx, s.log, "supplier.delete", err)
	}
	return deleted, nil
}
