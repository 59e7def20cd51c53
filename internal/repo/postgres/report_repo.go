package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

var ErrReportNotFound = errors.New("report not found")

type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

const reportColumns = `
id, content_type, content_id, reason, details, reporter_id, status,
resolved_by, resolved_at, created_at`

func scanReport(row pgx.Row) (model.ReportedContent, error) {
	var rep model.ReportedContent
	err := row.Scan(
		&rep.ID, &rep.ContentType, &rep.ContentID, &rep.Reason, &rep.Details,
		&rep.ReporterID, &rep.Status, &rep.ResolvedBy, &rep.ResolvedAt, &rep.CreatedAt,
	)
	return rep, err
}

// Create accepts a nil reporterID for anonymous reports. The content reference
// is soft: no foreign key, the target may already be gone.
func (r *ReportRepo) Create(ctx context.Context, contentType string, contentID int64, reason, details string, reporterID *int64) (model.ReportedContent, error) {
	if r.pool == nil {
		return model.ReportedContent{}, fmt.Errorf("postgres pool is nil")
	}
	if contentID <= 0 || strings.TrimSpace(reason) == "" {
		return model.ReportedContent{}, fmt.Errorf("invalid report payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO reported_content (
	content_type,
	content_id,
	reason,
	details,
	reporter_id,
	status,
	created_at
) VALUES ($1, $2, $3, $4, $5, 'pending', NOW())
RETURNING`+reportColumns, contentType, contentID, strings.TrimSpace(reason), details, reporterID)

	report, err := scanReport(row)
	if err != nil {
		return model.ReportedContent{}, fmt.Errorf("create report: %w", err)
	}

	return report, nil
}

// UpdateStatusBulk stamps the resolution on the whole id set in one statement.
// The resolver columns are written for every status value; the enum only has
// pending and resolved, and moving back to pending simply re-stamps.
func (r *ReportRepo) UpdateStatusBulk(ctx context.Context, ids []int64, status string, resolverID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE reported_content
SET status = $1,
	resolved_by = $2,
	resolved_at = NOW()
WHERE id = ANY($3)
`, status, resolverID, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk update report status: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ReportRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM reported_content
WHERE id = ANY($1)
`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete reports: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ReportRepo) ListByStatus(ctx context.Context, status string, limit int) ([]model.ReportedContent, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+reportColumns+`
FROM reported_content
WHERE status = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports by status: %w", err)
	}
	defer rows.Close()

	reports := make([]model.ReportedContent, 0)
	for rows.Next() {
		report, scanErr := scanReport(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan report row: %w", scanErr)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, nil
}
