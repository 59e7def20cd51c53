package dto

import (
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
)

type AccountResponse struct {
	ID          int64      `json:"id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	CompanyName *string    `json:"company_name,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewAccountResponse(account model.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		DisplayName: account.DisplayName,
		Email:       account.Email,
		Role:        string(account.Role),
		Status:      string(account.Status),
		CompanyName: account.CompanyName,
		LastLoginAt: account.LastLoginAt,
		CreatedAt:   account.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	DisplayName string  `json:"display_name"`
	CompanyName *string `json:"company_name,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AccountListResponse struct {
	Items []AccountResponse `json:"items"`
}
