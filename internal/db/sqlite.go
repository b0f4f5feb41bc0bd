package db

import (
	"context"
	"database/sql"
	"fmt"

	"weather-lookup/internal/logger"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (or creates) the embedded database file.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open(sqlite): %w", err)
	}
	// a single connection serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		logger.GetLogger().Warnw("Could not set WAL mode", "path", path, "error", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite %s: %w", path, err)
	}
	return db, nil
}
