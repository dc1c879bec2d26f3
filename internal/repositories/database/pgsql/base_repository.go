package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// auditQueryTimeout bounds each audit statement.
const auditQueryTimeout = 5 * time.Second

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

func (BaseRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, auditQueryTimeout)
}
