package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const TypeLowStock = "inventory:low_stock"

var (
	tracer        = otel.Tracer("inventory-worker")
	meter         = otel.Meter("inventory-worker")
	jobsCompleted metric.Int64Counter
	jobsFailed    metric.Int64Counter
	jobsDuration  metric.Float64Histogram
)

func init() {
	var err error

	jobsCompleted, err = meter.Int64Counter(
		"jobs.completed",
		metric.WithDescription("Total number of jobs completed successfully"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs completed counter")
	}

	jobsFailed, err = meter.Int64Counter(
		"jobs.failed",
		metric.WithDescription("Total number of jobs failed"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs failed counter")
	}

	jobsDuration, err = meter.Float64Histogram(
		"jobs.duration_ms",
		metric.WithDescription("Job processing duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs duration histogram")
	}
}

// LowStockPayload describes an inventory item at or below its minimum stock.
type LowStockPayload struct {
	InventoryItemID uint              `json:"inventory_item_id"`
	ProductID       uint              `json:"product_id"`
	ProductName     string            `json:"product_name,omitempty"`
	Quantity        int               `json:"quantity"`
	MinimumStock    int               `json:"minimum_stock"`
	MaximumStock    int               `json:"maximum_stock"`
	DetectedAt      time.Time         `json:"detected_at"`
	TraceContext    map[string]string `json:"trace_context"`
}

// ReorderQuantity is the amount needed to bring the item back to its maximum.
func (p LowStockPayload) ReorderQuantity() int {
	if p.MaximumStock <= p.Quantity {
		return 0
	}
	return p.MaximumStock - p.Quantity
}

func HandleLowStock(ctx context.Context, task *asynq.Task) error {
	start := time.Now()

	var payload LowStockPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		recordJobMetrics(ctx, TypeLowStock, false, time.Since(start))
		return fmt.Errorf("decode low stock payload: %v: %w", err, asynq.SkipRetry)
	}

	parentCtx := otel.GetTextMapPropagator().Extract(
		context.Background(),
		propagation.MapCarrier(payload.TraceContext),
	)

	ctx, span := tracer.Start(parentCtx, "job.low_stock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", int64(payload.ProductID)),
		attribute.Int("stock.quantity", payload.Quantity),
		attribute.Int("stock.minimum", payload.MinimumStock),
		attribute.String("job.type", TypeLowStock),
	)

	logging.Warn(ctx).
		Uint("inventory_item_id", payload.InventoryItemID).
		Uint("product_id", payload.ProductID).
		Str("product_name", payload.ProductName).
		Int("quantity", payload.Quantity).
		Int("minimum_stock", payload.MinimumStock).
		Int("reorder_quantity", payload.ReorderQuantity()).
		Time("detected_at", payload.DetectedAt).
		Msg("low stock alert")

	span.SetStatus(codes.Ok, "low stock alert processed")
	span.SetAttributes(attribute.Bool("job.success", true))

	recordJobMetrics(ctx, TypeLowStock, true, time.Since(start))

	return nil
}

func recordJobMetrics(ctx context.Context, jobType string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("job.type", jobType),
	}

	if success {
		if jobsCompleted != nil {
			jobsCompleted.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	} else {
		if jobsFailed != nil {
			jobsFailed.Add(ctx, 1, metric.WithAttributes(attrs...))
		}
	}

	if jobsDuration != nil {
		jobsDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
