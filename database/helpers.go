package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RunInTransaction executes fn inside a transaction, rolling back on error
// or panic and committing otherwise.
func RunInTransaction(ctx context.Context, db *DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// FindByID fetches a single record by its primary key column
func FindByID[T any](ctx context.Context, db *DB, id any) (*T, error) {
	return Query[T](db).Where("id", id).First(ctx)
}

// Paginate applies limit/offset from a 1-based page number
func Paginate[T any](q *QueryBuilder[T], page, perPage int) *QueryBuilder[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	return q.Limit(perPage).Offset((page - 1) * perPage)
}
