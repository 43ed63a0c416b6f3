package telemetry

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus collectors scraped from /metrics alongside the OTLP push pipeline.
var (
	RequestsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "requests_rejected_total",
		Help:      "Requests rejected by the concurrency limiter.",
	}, []string{"route"})

	StockAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "stock_adjustments_total",
		Help:      "Stock adjustments applied to inventory items, by direction.",
	}, []string{"direction"})

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "orders_placed_total",
		Help:      "Orders persisted via order placement.",
	})
)

func MetricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
