package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/eslsoft/readflow/internal/infrastructure/config"
	_ "github.com/lib/pq"           // postgres driver for database/sql paths
	_ "github.com/mattn/go-sqlite3" // sqlite driver for database/sql paths
)

// OpenSQL opens a database/sql handle for the configured driver. The pgx pool
// serves the request path; this handle serves migrations and backup, which go
// through ent's dialect driver and plain SQL.
func OpenSQL(cfg *config.Config) (*sql.DB, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, err
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", driver, err)
	}

	cleanup := func() { db.Close() }
	return db, cleanup, nil
}

// EntDriver wraps a database/sql handle in ent's dialect driver for the
// migration engine.
func EntDriver(driver string, db *sql.DB) (dialect.Driver, error) {
	switch driver {
	case "postgres":
		return entsql.OpenDB(dialect.Postgres, db), nil
	case "sqlite3":
		return entsql.OpenDB(dialect.SQLite, db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
