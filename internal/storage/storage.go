package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-sitekit/internal/runtimeconfig"
)

// OpenDB opens a bun database for the configured driver. The memory driver
// has no database; callers get (nil, nil) and should fall back to in-process
// repositories.
func OpenDB(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", runtimeconfig.StorageDriverMemory:
		return nil, nil
	case runtimeconfig.StorageDriverSQLite:
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		return db, nil
	case runtimeconfig.StorageDriverPostgres:
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: %w: %q", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
}
