package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("application already exists")
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

const applicationColumns = `
id, job_id, seeker_id, status, resume_key, applied_at, updated_at`

func scanApplication(row pgx.Row) (model.Application, error) {
	var a model.Application
	err := row.Scan(&a.ID, &a.JobID, &a.SeekerID, &a.Status, &a.ResumeKey, &a.AppliedAt, &a.UpdatedAt)
	return a, err
}

func (r *ApplicationRepo) Create(ctx context.Context, jobID, seekerID int64, resumeKey *string) (model.Application, error) {
	if r.pool == nil {
		return model.Application{}, fmt.Errorf("postgres pool is nil")
	}
	if jobID <= 0 || seekerID <= 0 {
		return model.Application{}, fmt.Errorf("invalid application payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO applications (
	job_id,
	seeker_id,
	status,
	resume_key,
	applied_at,
	updated_at
) VALUES ($1, $2, 'pending', $3, NOW(), NOW())
RETURNING`+applicationColumns, jobID, seekerID, resumeKey)

	application, err := scanApplication(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Application{}, ErrAlreadyApplied
		}
		return model.Application{}, fmt.Errorf("create application: %w", err)
	}

	return application, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id int64) (model.Application, error) {
	if r.pool == nil {
		return model.Application{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Application{}, fmt.Errorf("invalid application id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+applicationColumns+`
FROM applications
WHERE id = $1
`, id)

	application, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Application{}, ErrApplicationNotFound
		}
		return model.Application{}, fmt.Errorf("get application: %w", err)
	}

	return application, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid application id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE applications
SET status = $2, updated_at = NOW()
WHERE id = $1
`, id, status)
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

func (r *ApplicationRepo) SetResumeKey(ctx context.Context, id int64, resumeKey string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || resumeKey == "" {
		return fmt.Errorf("invalid resume payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE applications
SET resume_key = $2, updated_at = NOW()
WHERE id = $1
`, id, resumeKey)
	if err != nil {
		return fmt.Errorf("set application resume key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicationNotFound
	}

	return nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID int64) ([]model.Application, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if jobID <= 0 {
		return nil, fmt.Errorf("invalid job id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+applicationColumns+`
FROM applications
WHERE job_id = $1
ORDER BY applied_at DESC, id DESC
`, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications by job: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

func (r *ApplicationRepo) ListBySeeker(ctx context.Context, seekerID int64) ([]model.Application, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if seekerID <= 0 {
		return nil, fmt.Errorf("invalid seeker id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+applicationColumns+`
FROM applications
WHERE seeker_id = $1
ORDER BY applied_at DESC, id DESC
`, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list applications by seeker: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]model.Application, error) {
	applications := make([]model.Application, 0)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application row: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate application rows: %w", err)
	}
	return applications, nil
}
