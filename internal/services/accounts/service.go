package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
)

var (
	ErrInvalidInput    = errors.New("invalid account input")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("current password does not match")
)

type Store interface {
	GetByID(ctx context.Context, id int64) (model.Account, error)
	UpdateProfile(ctx context.Context, id int64, displayName string, companyName *string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context, filter pgrepo.AccountFilter) ([]model.Account, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, id int64) (model.Account, error) {
	account, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAccountNotFound) {
			return model.Account{}, ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("get account: %w", err)
	}
	return account, nil
}

type UpdateProfileInput struct {
	DisplayName string
	CompanyName *string
}

func (s *Service) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (model.Account, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" || len(displayName) > 120 {
		return model.Account{}, fmt.Errorf("%w: display name", ErrInvalidInput)
	}

	account, err := s.Get(ctx, id)
	if err != nil {
		return model.Account{}, err
	}

	companyName := account.CompanyName
	if account.Role == enums.RoleEmployer && input.CompanyName != nil {
		trimmed := strings.TrimSpace(*input.CompanyName)
		if trimmed == "" {
			return model.Account{}, fmt.Errorf("%w: company name", ErrInvalidInput)
		}
		companyName = &trimmed
	}

	if err := s.store.UpdateProfile(ctx, id, displayName, companyName); err != nil {
		return model.Account{}, fmt.Errorf("update profile: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	account, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authsvc.CheckPassword(account.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}

	hash, err := authsvc.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.store.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

type ListInput struct {
	Role   string
	Status string
	Limit  int
	Offset int
}

func (s *Service) List(ctx context.Context, input ListInput) ([]model.Account, error) {
	if input.Role != "" && !enums.ValidRole(input.Role) {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidInput, input.Role)
	}
	if input.Status != "" && !enums.ValidAccountStatus(input.Status) {
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, input.Status)
	}

	items, err := s.store.List(ctx, pgrepo.AccountFilter{
		Role:   input.Role,
		Status: input.Status,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return items, nil
}
