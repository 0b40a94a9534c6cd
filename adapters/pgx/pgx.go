package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"tasktrack"
)

// Adapter implements the storage ports on a PostgreSQL pool.
type Adapter struct {
	pool *pgxpool.Pool
}

var _ tasktrack.Storage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
