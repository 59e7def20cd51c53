package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrorLogRepo is the persistence error hook: failed queries are recorded
// here so production responses can stay generic while the full detail
// (query context, wrapped driver error) survives for inspection.
type ErrorLogRepo struct {
	pool *pgxpool.Pool
}

func NewErrorLogRepo(pool *pgxpool.Pool) *ErrorLogRepo {
	return &ErrorLogRepo{pool: pool}
}

func (r *ErrorLogRepo) Insert(ctx context.Context, source, message, detail string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if message == "" {
		return fmt.Errorf("error message is required")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO error_log (
	source,
	message,
	detail,
	created_at
) VALUES ($1, $2, $3, NOW())
`, source, message, detail); err != nil {
		return fmt.Errorf("insert error log entry: %w", err)
	}

	return nil
}
