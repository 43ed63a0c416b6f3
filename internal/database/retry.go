package database

import (
	"context"
	"time"

	"github.com/SivakumaranJathurshan/CourseWork/internal/logging"

	"github.com/cenkalti/backoff/v5"
	"gorm.io/gorm"
)

// OpenWithRetry calls Open until the database answers a ping or maxTries is
// reached. Postgres often comes up after the API in local compose setups.
func OpenWithRetry(ctx context.Context, cfg Config, maxTries uint) (*gorm.DB, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	var attempt int
	return backoff.Retry(ctx, func() (*gorm.DB, error) {
		attempt++
		db, err := Open(cfg)
		if err == nil {
			err = CheckHealth(db)
			if err != nil {
				_ = Close(db)
			}
		}
		if err != nil {
			logging.Logger().Warn().Err(err).Int("attempt", attempt).Msg("database not ready")
			return nil, err
		}
		return db, nil
	},
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(maxTries),
	)
}
