package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"
	"github.com/SivakumaranJathurshan/CourseWork/internal/telemetry"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"
)

// ConcurrencyLimiter admits at most permits requests at a time. Up to queue
// further requests wait in arrival order; the rest get 429.
type ConcurrencyLimiter struct {
	sem     *semaphore.Weighted
	queue   int64
	waiting atomic.Int64
}

func NewConcurrencyLimiter(permits, queue int) *ConcurrencyLimiter {
	if queue < 0 {
		queue = 0
	}
	return &ConcurrencyLimiter{
		sem:   semaphore.NewWeighted(int64(permits)),
		queue: int64(queue),
	}
}

// Waiting returns the number of requests queued for a permit.
func (l *ConcurrencyLimiter) Waiting() int {
	return int(l.waiting.Load())
}

// Middleware applies the limiter. name labels rejections in the
// requests_rejected_total counter.
func (l *ConcurrencyLimiter) Middleware(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l.sem.TryAcquire(1) {
				defer l.sem.Release(1)
				return next(c)
			}

			if l.waiting.Add(1) > l.queue {
				l.waiting.Add(-1)
				telemetry.RequestsRejected.WithLabelValues(name).Inc()
				logging.Warn(c.Request().Context()).
					Str("limiter", name).
					Str("path", c.Path()).
					Msg("request rejected by concurrency limiter")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			err := l.sem.Acquire(c.Request().Context(), 1)
			l.waiting.Add(-1)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "request cancelled while queued")
			}
			defer l.sem.Release(1)

			return next(c)
		}
	}
}
