package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weather-lookup/internal/logger"

	"github.com/avast/retry-go/v4"
	_ "github.com/lib/pq"
)

const (
	connectAttempts = 10
	connectDelay    = 3 * time.Second
)

// ConnectPostgres opens a lib/pq pool and retries the first ping.
func ConnectPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open(postgres): %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ping(ctx, "postgres", db.PingContext); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ping retries fn until it succeeds, the attempts run out or ctx is done.
func ping(ctx context.Context, name string, fn func(context.Context) error) error {
	log := logger.GetLogger()
	err := retry.Do(
		func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return fn(pingCtx)
		},
		retry.Context(ctx),
		retry.Attempts(connectAttempts),
		retry.Delay(connectDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warnw("Connection attempt failed", "backend", name, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%s connection failed after %d attempts: %w", name, connectAttempts, err)
	}
	log.Infow("Connected", "backend", name)
	return nil
}
