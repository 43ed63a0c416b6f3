package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/middleware"
	"github.com/SivakumaranJathurshan/CourseWork/internal/repository"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConfiguration      = errors.New("configuration error")
	ErrInternal           = errors.New("internal server error")
)

var (
	ErrPasswordMismatch  = fmt.Errorf("%w: password not matched", ErrValidation)
	ErrInvalidStatus     = fmt.Errorf("%w: unknown order status", ErrValidation)
	ErrEmptyOrder        = fmt.Errorf("%w: order has no items", ErrValidation)
	ErrUserExists        = fmt.Errorf("%w: user already exists", ErrConflict)
	ErrDuplicateSKU      = fmt.Errorf("%w: sku already in use", ErrConflict)
	ErrCategoryInUse     = fmt.Errorf("%w: category still has products", ErrConflict)
	ErrSupplierInUse     = fmt.Errorf("%w: supplier still has products", ErrConflict)
	ErrProductInUse      = fmt.Errorf("%w: product is referenced by orders", ErrConflict)
	ErrJWTKeyMissing     = fmt.Errorf("%w: JWT key is missing", ErrConfiguration)
	ErrJWTKeyTooShort    = fmt.Errorf("%w: JWT key must be at least %d characters", ErrConfiguration, middleware.MinJWTKeyLength)
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrSupplierNotFound  = fmt.Errorf("supplier %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrInventoryNotFound = fmt.Errorf("inventory item %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
)

// internal records an unexpected repository failure on the span and in the
// log, and returns the opaque ErrInternal in its place.
func internal(ctx context.Context, log zerolog.Logger, op string, err error) error {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, op)

	l := logging.Span(ctx, log)
	l.Error().Err(err).Str("op", op).Msg("Internal server Error")
	return ErrInternal
}

// lookup maps repository.ErrNotFound onto notFound and anything else onto ErrInternal.
func lookup(ctx context.Context, log zerolog.Logger, op string, err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return internal(ctx, log, op, err)
}
