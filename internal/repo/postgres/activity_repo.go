package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

func (r *ActivityRepo) Insert(ctx context.Context, entry model.ActivityLogEntry) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if entry.Action == "" {
		return fmt.Errorf("activity action is required")
	}

	var actor any
	if entry.ActorID != nil && *entry.ActorID > 0 {
		actor = *entry.ActorID
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO activity_log (
	actor_id,
	action,
	details,
	source_ip,
	created_at
) VALUES ($1, $2, $3, $4, NOW())
`, actor, string(entry.Action), entry.Details, entry.SourceIP); err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}

	return nil
}

func (r *ActivityRepo) ListRecent(ctx context.Context, limit int) ([]model.ActivityLogEntry, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, actor_id, action, details, source_ip, created_at
FROM activity_log
ORDER BY created_at DESC, id DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	defer rows.Close()

	entries := make([]model.ActivityLogEntry, 0, limit)
	for rows.Next() {
		var entry model.ActivityLogEntry
		if scanErr := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Details, &entry.SourceIP, &entry.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("scan activity row: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	return entries, nil
}

// Clear is the only mutation the log supports besides append.
func (r *ActivityRepo) Clear(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM activity_log`)
	if err != nil {
		return 0, fmt.Errorf("clear activity log: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM activity_log
WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old activity entries: %w", err)
	}

	return tag.RowsAffected(), nil
}
