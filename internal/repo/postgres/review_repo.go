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

var ErrReviewNotFound = errors.New("review not found")

type ReviewRepo struct {
	pool *pgxpool.Pool
}

func NewReviewRepo(pool *pgxpool.Pool) *ReviewRepo {
	return &ReviewRepo{pool: pool}
}

// ReviewParties resolves a review id to its notification recipients: the
// employer being reviewed and the author who wrote it.
type ReviewParties struct {
	ID         int64
	Title      string
	EmployerID int64
	AuthorID   int64
}

const reviewColumns = `
id, employer_id, author_id, rating, title, content, status,
moderation_notes, moderated_by, moderated_at, created_at, updated_at`

func scanReview(row pgx.Row) (model.EmployerReview, error) {
	var v model.EmployerReview
	err := row.Scan(
		&v.ID, &v.EmployerID, &v.AuthorID, &v.Rating, &v.Title, &v.Content,
		&v.Status, &v.ModerationNotes, &v.ModeratedBy, &v.ModeratedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

func (r *ReviewRepo) Create(ctx context.Context, employerID, authorID int64, rating int, title, content string) (model.EmployerReview, error) {
	if r.pool == nil {
		return model.EmployerReview{}, fmt.Errorf("postgres pool is nil")
	}
	if employerID <= 0 || authorID <= 0 {
		return model.EmployerReview{}, fmt.Errorf("invalid review payload")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO employer_reviews (
	employer_id,
	author_id,
	rating,
	title,
	content,
	status,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, 'pending', NOW(), NOW())
RETURNING`+reviewColumns, employerID, authorID, rating, strings.TrimSpace(title), content)

	review, err := scanReview(row)
	if err != nil {
		return model.EmployerReview{}, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func (r *ReviewRepo) GetByID(ctx context.Context, id int64) (model.EmployerReview, error) {
	if r.pool == nil {
		return model.EmployerReview{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.EmployerReview{}, fmt.Errorf("invalid review id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+reviewColumns+`
FROM employer_reviews
WHERE id = $1
`, id)

	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EmployerReview{}, ErrReviewNotFound
		}
		return model.EmployerReview{}, fmt.Errorf("get review: %w", err)
	}

	return review, nil
}

// UpdateStatusBulk stamps the moderation decision on the whole id set in a
// single statement, recording who moderated and when.
func (r *ReviewRepo) UpdateStatusBulk(ctx context.Context, ids []int64, status string, moderatorID int64, notes *string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE employer_reviews
SET status = $1,
	moderated_by = $2,
	moderated_at = NOW(),
	moderation_notes = COALESCE($3, moderation_notes),
	updated_at = NOW()
WHERE id = ANY($4)
`, status, moderatorID, notes, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk update review status: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ReviewRepo) PartiesFor(ctx context.Context, ids []int64) ([]ReviewParties, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, employer_id, author_id
FROM employer_reviews
WHERE id = ANY($1)
`, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve review parties: %w", err)
	}
	defer rows.Close()

	parties := make([]ReviewParties, 0, len(ids))
	for rows.Next() {
		var p ReviewParties
		if scanErr := rows.Scan(&p.ID, &p.Title, &p.EmployerID, &p.AuthorID); scanErr != nil {
			return nil, fmt.Errorf("scan review parties row: %w", scanErr)
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review parties rows: %w", err)
	}

	return parties, nil
}

func (r *ReviewRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM employer_reviews
WHERE id = ANY($1)
`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete reviews: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *ReviewRepo) ListForEmployer(ctx context.Context, employerID int64, status string) ([]model.EmployerReview, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if employerID <= 0 {
		return nil, fmt.Errorf("invalid employer id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+reviewColumns+`
FROM employer_reviews
WHERE employer_id = $1
  AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id DESC
`, employerID, status)
	if err != nil {
		return nil, fmt.Errorf("list employer reviews: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

func (r *ReviewRepo) ListByStatus(ctx context.Context, status string, limit int) ([]model.EmployerReview, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+reviewColumns+`
FROM employer_reviews
WHERE status = $1
ORDER BY created_at ASC, id ASC
LIMIT $2
`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews by status: %w", err)
	}
	defer rows.Close()

	return collectReviews(rows)
}

func collectReviews(rows pgx.Rows) ([]model.EmployerReview, error) {
	reviews := make([]model.EmployerReview, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}
	return reviews, nil
}
