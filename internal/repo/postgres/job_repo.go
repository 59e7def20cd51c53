package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

var ErrJobNotFound = errors.New("job listing not found")

type JobRepo struct {
	pool *pgxpool.Pool
}

func NewJobRepo(pool *pgxpool.Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

// JobOwner resolves a listing id to its notification recipient.
type JobOwner struct {
	ID         int64
	Title      string
	EmployerID int64
}

const jobColumns = `
id, employer_id, title, location, type, category, description, requirements,
salary_min, salary_max, remote, status, expires_at, created_at, updated_at`

func scanJob(row pgx.Row) (model.JobListing, error) {
	var j model.JobListing
	err := row.Scan(
		&j.ID, &j.EmployerID, &j.Title, &j.Location, &j.Type, &j.Category,
		&j.Description, &j.Requirements, &j.SalaryMin, &j.SalaryMax, &j.Remote,
		&j.Status, &j.ExpiresAt, &j.CreatedAt, &j.UpdatedAt,
	)
	return j, err
}

func (r *JobRepo) Create(ctx context.Context, job model.JobListing) (model.JobListing, error) {
	if r.pool == nil {
		return model.JobListing{}, fmt.Errorf("postgres pool is nil")
	}
	if job.EmployerID <= 0 || strings.TrimSpace(job.Title) == "" {
		return model.JobListing{}, fmt.Errorf("invalid job payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO job_listings (
	employer_id,
	title,
	location,
	type,
	category,
	description,
	requirements,
	salary_min,
	salary_max,
	remote,
	status,
	expires_at,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
RETURNING`+jobColumns,
		job.EmployerID, strings.TrimSpace(job.Title), job.Location, job.Type,
		job.Category, job.Description, job.Requirements, job.SalaryMin,
		job.SalaryMax, job.Remote, job.Status, job.ExpiresAt)

	created, err := scanJob(row)
	if err != nil {
		return model.JobListing{}, fmt.Errorf("create job listing: %w", err)
	}

	return created, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id int64) (model.JobListing, error) {
	if r.pool == nil {
		return model.JobListing{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.JobListing{}, fmt.Errorf("invalid job id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+jobColumns+`
FROM job_listings
WHERE id = $1
`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.JobListing{}, ErrJobNotFound
		}
		return model.JobListing{}, fmt.Errorf("get job listing: %w", err)
	}

	return job, nil
}

func (r *JobRepo) Update(ctx context.Context, job model.JobListing) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if job.ID <= 0 || strings.TrimSpace(job.Title) == "" {
		return fmt.Errorf("invalid job payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE job_listings
SET title = $2,
	location = $3,
	type = $4,
	category = $5,
	description = $6,
	requirements = $7,
	salary_min = $8,
	salary_max = $9,
	remote = $10,
	expires_at = $11,
	updated_at = NOW()
WHERE id = $1
`, job.ID, strings.TrimSpace(job.Title), job.Location, job.Type, job.Category,
		job.Description, job.Requirements, job.SalaryMin, job.SalaryMax,
		job.Remote, job.ExpiresAt)
	if err != nil {
		return fmt.Errorf("update job listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrJobNotFound
	}

	return nil
}

func (r *JobRepo) UpdateStatusBulk(ctx context.Context, ids []int64, status string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE job_listings
SET status = $1, updated_at = NOW()
WHERE id = ANY($2)
`, status, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk update job status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// OwnersFor returns the listing title and employer for each id that still
// exists, in no particular order.
func (r *JobRepo) OwnersFor(ctx context.Context, ids []int64) ([]JobOwner, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, employer_id
FROM job_listings
WHERE id = ANY($1)
`, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve job owners: %w", err)
	}
	defer rows.Close()

	owners := make([]JobOwner, 0, len(ids))
	for rows.Next() {
		var owner JobOwner
		if scanErr := rows.Scan(&owner.ID, &owner.Title, &owner.EmployerID); scanErr != nil {
			return nil, fmt.Errorf("scan job owner row: %w", scanErr)
		}
		owners = append(owners, owner)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job owner rows: %w", err)
	}

	return owners, nil
}

// DeleteCascade removes the listings and their applications in one transaction.
func (r *JobRepo) DeleteCascade(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
DELETE FROM applications
WHERE job_id = ANY($1)
`, ids); err != nil {
			return fmt.Errorf("delete listing applications: %w", err)
		}

		tag, err := tx.Exec(ctx, `
DELETE FROM job_listings
WHERE id = ANY($1)
`, ids)
		if err != nil {
			return fmt.Errorf("delete job listings: %w", err)
		}
		affected = tag.RowsAffected()

		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

func (r *JobRepo) ListByEmployer(ctx context.Context, employerID int64) ([]model.JobListing, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if employerID <= 0 {
		return nil, fmt.Errorf("invalid employer id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+jobColumns+`
FROM job_listings
WHERE employer_id = $1
ORDER BY created_at DESC, id DESC
`, employerID)
	if err != nil {
		return nil, fmt.Errorf("list employer job listings: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

type JobFilter struct {
	Category string
	Type     string
	Location string
	Remote   *bool
	Limit    int
	Offset   int
}

// Search returns active listings only; moderation state is invisible to the
// public surface.
func (r *JobRepo) Search(ctx context.Context, filter JobFilter) ([]model.JobListing, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	var remote any
	if filter.Remote != nil {
		remote = *filter.Remote
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+jobColumns+`
FROM job_listings
WHERE status = 'active'
  AND ($1 = '' OR category = $1)
  AND ($2 = '' OR type = $2)
  AND ($3 = '' OR location ILIKE '%' || $3 || '%')
  AND ($4::BOOLEAN IS NULL OR remote = $4)
ORDER BY created_at DESC, id DESC
LIMIT $5 OFFSET $6
`, filter.Category, filter.Type, filter.Location, remote, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("search job listings: %w", err)
	}
	defer rows.Close()

	return collectJobs(rows)
}

// ExpireBefore marks active listings whose expiry passed as expired and
// returns how many rows changed.
func (r *JobRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE job_listings
SET status = 'expired', updated_at = NOW()
WHERE status = 'active'
  AND expires_at IS NOT NULL
  AND expires_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("expire job listings: %w", err)
	}

	return tag.RowsAffected(), nil
}

func collectJobs(rows pgx.Rows) ([]model.JobListing, error) {
	jobs := make([]model.JobListing, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job rows: %w", err)
	}
	return jobs, nil
}
