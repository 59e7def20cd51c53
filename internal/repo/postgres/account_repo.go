package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

type AccountRepo struct {
	pool *pgxpool.Pool
}

func NewAccountRepo(pool *pgxpool.Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

const accountColumns = `
id, display_name, email, password_hash, role, status, company_name,
last_active_at, last_login_at, created_at, updated_at`

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.DisplayName, &a.Email, &a.PasswordHash, &a.Role, &a.Status,
		&a.CompanyName, &a.LastActiveAt, &a.LastLoginAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepo) Create(ctx context.Context, displayName, email, passwordHash, role, status string, companyName *string) (model.Account, error) {
	if r.pool == nil {
		return model.Account{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO accounts (
	display_name,
	email,
	password_hash,
	role,
	status,
	company_name,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
RETURNING`+accountColumns, strings.TrimSpace(displayName), normalizeEmail(email), passwordHash, role, status, companyName)

	account, err := scanAccount(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.Account{}, ErrEmailTaken
		}
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (model.Account, error) {
	if r.pool == nil {
		return model.Account{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return model.Account{}, fmt.Errorf("invalid account id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+accountColumns+`
FROM accounts
WHERE id = $1
`, id)

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepo) FindByEmail(ctx context.Context, email string) (model.Account, error) {
	if r.pool == nil {
		return model.Account{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(email) == "" {
		return model.Account{}, fmt.Errorf("email is required")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+accountColumns+`
FROM accounts
WHERE email = $1
`, normalizeEmail(email))

	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("find account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, id int64, displayName string, companyName *string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || strings.TrimSpace(displayName) == "" {
		return fmt.Errorf("invalid profile payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE accounts
SET display_name = $2, company_name = $3, updated_at = NOW()
WHERE id = $1
`, id, strings.TrimSpace(displayName), companyName)
	if err != nil {
		return fmt.Errorf("update account profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || passwordHash == "" {
		return fmt.Errorf("invalid password payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE accounts
SET password_hash = $2, updated_at = NOW()
WHERE id = $1
`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update account password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *AccountRepo) TouchLastLogin(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE accounts
SET last_login_at = NOW(), last_active_at = NOW(), updated_at = NOW()
WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}

	return nil
}

func (r *AccountRepo) TouchLastActive(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE accounts
SET last_active_at = NOW()
WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("touch last active: %w", err)
	}

	return nil
}

// UpdateStatusBulk applies one status to the whole id set in a single
// statement. Callers rely on there being no read-modify-write gap here.
func (r *AccountRepo) UpdateStatusBulk(ctx context.Context, ids []int64, status string) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE accounts
SET status = $1, updated_at = NOW()
WHERE id = ANY($2)
`, status, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk update account status: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteCascade removes the accounts and every dependent row: their
// applications, their job listings (with those listings' applications),
// reviews they wrote or received, and their notifications.
func (r *AccountRepo) DeleteCascade(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var affected int64
	err := WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
DELETE FROM applications
WHERE seeker_id = ANY($1)
   OR job_id IN (SELECT id FROM job_listings WHERE employer_id = ANY($1))
`, ids); err != nil {
			return fmt.Errorf("delete dependent applications: %w", err)
		}

		if _, err := tx.Exec(ctx, `
DELETE FROM job_listings
WHERE employer_id = ANY($1)
`, ids); err != nil {
			return fmt.Errorf("delete dependent job listings: %w", err)
		}

		if _, err := tx.Exec(ctx, `
DELETE FROM employer_reviews
WHERE employer_id = ANY($1) OR author_id = ANY($1)
`, ids); err != nil {
			return fmt.Errorf("delete dependent reviews: %w", err)
		}

		if _, err := tx.Exec(ctx, `
DELETE FROM notifications
WHERE recipient_id = ANY($1)
`, ids); err != nil {
			return fmt.Errorf("delete dependent notifications: %w", err)
		}

		tag, err := tx.Exec(ctx, `
DELETE FROM accounts
WHERE id = ANY($1)
`, ids)
		if err != nil {
			return fmt.Errorf("delete accounts: %w", err)
		}
		affected = tag.RowsAffected()

		return nil
	})
	if err != nil {
		return 0, err
	}

	return affected, nil
}

type AccountFilter struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

func (r *AccountRepo) List(ctx context.Context, filter AccountFilter) ([]model.Account, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	query := `
SELECT` + accountColumns + `
FROM accounts
WHERE ($1 = '' OR role = $1)
  AND ($2 = '' OR status = $2)
ORDER BY created_at DESC, id DESC
LIMIT $3 OFFSET $4
`

	rows, err := r.pool.Query(ctx, query, filter.Role, filter.Status, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]model.Account, 0)
	for rows.Next() {
		account, scanErr := scanAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan account row: %w", scanErr)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}

	return accounts, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
