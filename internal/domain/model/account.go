package model

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
)

type Account struct {
	ID           int64               `json:"id"`
	DisplayName  string              `json:"display_name"`
	Email        string              `json:"email"`
	PasswordHash string              `json:"-"`
	Role         enums.Role          `json:"role"`
	Status       enums.AccountStatus `json:"status"`
	CompanyName  *string             `json:"company_name,omitempty"`
	LastActiveAt *time.Time          `json:"last_active_at,omitempty"`
	LastLoginAt  *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
