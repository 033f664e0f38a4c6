package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Rows is the subset of pgx.Rows the services read through.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// DBConn is the read-only query surface the services need from Postgres.
type DBConn interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// PoolAdapter exposes a pgxpool.Pool as a DBConn.
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (a *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
