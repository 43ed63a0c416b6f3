package jobs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/jobs/tasks"
	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/models"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
)

const (
	TypeLowStock = tasks.TypeLowStock
	DefaultQueue = "default"
)

var (
	tracer       = otel.Tracer("inventory-api")
	meter        = otel.Meter("inventory-api")
	jobsEnqueued metric.Int64Counter
)

type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) (*Client, error) {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})

	var err error
	jobsEnqueued, err = meter.Int64Counter(
		"jobs.enqueued",
		metric.WithDescription("Total number of jobs enqueued"),
	)
	if err != nil {
		logging.Logger().Error().Err(err).Msg("failed to create jobs enqueued counter")
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// NotifyLowStock enqueues a low stock alert for item.
func (c *Client) NotifyLowStock(ctx context.Context, item models.InventoryItem) error {
	ctx, span := tracer.Start(ctx, "job.enqueue.low_stock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("product.id", int64(item.ProductID)),
		attribute.Int("stock.quantity", item.Quantity),
		attribute.String("job.type", TypeLowStock),
	)

	task, err := newLowStockTask(ctx, item, time.Now().UTC())
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(DefaultQueue),
		asynq.MaxRetry(5),
	)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if jobsEnqueued != nil {
		jobsEnqueued.Add(ctx, 1, metric.WithAttributes(
			attribute.String("job.type", TypeLowStock),
		))
	}

	span.SetAttributes(
		attribute.String("job.id", info.ID),
		attribute.String("job.queue", info.Queue),
	)

	logging.Info(ctx).
		Str("job_id", info.ID).
		Str("job_type", TypeLowStock).
		Uint("product_id", item.ProductID).
		Msg("job enqueued")

	return nil
}

func newLowStockTask(ctx context.Context, item models.InventoryItem, detectedAt time.Time) (*asynq.Task, error) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	payload := tasks.LowStockPayload{
		InventoryItemID: item.ID,
		ProductID:       item.ProductID,
		Quantity:        item.Quantity,
		MinimumStock:    item.MinimumStock,
		MaximumStock:    item.MaximumStock,
		DetectedAt:      detectedAt,
		TraceContext:    carrier,
	}
	if item.Product != nil {
		payload.ProductName = item.Product.Name
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeLowStock, payloadBytes), nil
}
