// Package db is the plain-SQL query layer over pgx. It keeps the
// Queries-over-DBTX shape so call sites work against a pool, a single
// connection or a transaction alike.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX abstracts the pgx execution surface shared by pools, connections and
// transactions.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// New constructs the query layer over any DBTX.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries bundles all SQL statements of the application.
type Queries struct {
	db DBTX
}

// WithTx returns a Queries bound to the given transaction.
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}
