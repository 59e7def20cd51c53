package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
)

const (
	MinPasswordLength = 8
	MinRefreshTTL     = 24 * time.Hour
	MaxRefreshTTL     = 90 * 24 * time.Hour
)

type AccountStore interface {
	Create(ctx context.Context, displayName, email, passwordHash, role, status string, companyName *string) (model.Account, error)
	FindByEmail(ctx context.Context, email string) (model.Account, error)
	TouchLastLogin(ctx context.Context, id int64) error
	TouchLastActive(ctx context.Context, id int64) error
}

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, refreshToken string, idleTTL time.Duration) error
	GetSession(ctx context.Context, sid string) (SessionRecord, error)
	Touch(ctx context.Context, sid string, idleTTL time.Duration) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (SessionRecord, error)
	RotateRefresh(ctx context.Context, oldSID, newSID, oldRefreshToken, newRefreshToken string, expiresAt time.Time, idleTTL time.Duration) error
	DeleteSession(ctx context.Context, sid string) error
	DeleteAllForAccount(ctx context.Context, accountID int64) error
}

type AuditRecorder interface {
	Record(ctx context.Context, actorID *int64, action enums.AuditAction, details, sourceIP string) error
}

type Service struct {
	accounts   AccountStore
	sessions   SessionStore
	jwt        *JWTManager
	audit      AuditRecorder
	refreshTTL time.Duration
	idleTTL    time.Duration
	now        func() time.Time
}

func NewService(accounts AccountStore, sessions SessionStore, jwtManager *JWTManager, refreshTTL, idleTTL time.Duration) *Service {
	if refreshTTL < MinRefreshTTL {
		refreshTTL = MinRefreshTTL
	}
	if refreshTTL > MaxRefreshTTL {
		refreshTTL = MaxRefreshTTL
	}
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}

	return &Service{
		accounts:   accounts,
		sessions:   sessions,
		jwt:        jwtManager,
		refreshTTL: refreshTTL,
		idleTTL:    idleTTL,
		now:        time.Now,
	}
}

// AttachAudit turns on audit trail entries for register, login and logout.
func (s *Service) AttachAudit(recorder AuditRecorder) {
	s.audit = recorder
}

func (s *Service) recordAudit(ctx context.Context, actorID int64, action enums.AuditAction, details string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, &actorID, action, details, "")
}

type RegisterInput struct {
	DisplayName string
	Email       string
	Password    string
	Role        string
	CompanyName string
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (model.Account, error) {
	if s.accounts == nil {
		return model.Account{}, fmt.Errorf("auth service account store is not configured")
	}

	displayName := strings.TrimSpace(input.DisplayName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := strings.ToLower(strings.TrimSpace(input.Role))

	if displayName == "" || email == "" || !strings.Contains(email, "@") {
		return model.Account{}, ErrInvalidInput
	}
	if len(input.Password) < MinPasswordLength {
		return model.Account{}, ErrInvalidInput
	}
	if role != string(enums.RoleSeeker) && role != string(enums.RoleEmployer) {
		return model.Account{}, ErrInvalidInput
	}

	var companyName *string
	if role == string(enums.RoleEmployer) {
		company := strings.TrimSpace(input.CompanyName)
		if company == "" {
			return model.Account{}, ErrInvalidInput
		}
		companyName = &company
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return model.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(ctx, displayName, email, hash, role, string(enums.AccountStatusActive), companyName)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEmailTaken) {
			return model.Account{}, ErrEmailTaken
		}
		return model.Account{}, fmt.Errorf("create account: %w", err)
	}

	s.recordAudit(ctx, account.ID, enums.AuditActionRegister,
		fmt.Sprintf("Registered account #%d as %s", account.ID, account.Role))
	return account, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if s.accounts == nil || s.sessions == nil || s.jwt == nil {
		return AuthResult{}, fmt.Errorf("auth service dependencies are not configured")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return AuthResult{}, ErrInvalidInput
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAccountNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("find account: %w", err)
	}

	if err := CheckPassword(account.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	switch account.Status {
	case enums.AccountStatusSuspended, enums.AccountStatusInactive:
		return AuthResult{}, ErrAccountNotActive
	}

	result, err := s.issueForAccount(ctx, account)
	if err != nil {
		return AuthResult{}, err
	}

	s.recordAudit(ctx, account.ID, enums.AuditActionLogin,
		fmt.Sprintf("Account #%d logged in", account.ID))

	if err := s.accounts.TouchLastLogin(ctx, account.ID); err != nil {
		// Login stamping is advisory; the session is already live.
		return result, nil
	}

	return result, nil
}

// Refresh rotates both the refresh token and the session id.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if s.sessions == nil || s.jwt == nil {
		return AuthResult{}, fmt.Errorf("auth service dependencies are not configured")
	}
	if strings.TrimSpace(refreshToken) == "" {
		return AuthResult{}, ErrInvalidInput
	}

	session, err := s.sessions.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("get refresh token session: %w", err)
	}
	if s.now().After(session.ExpiresAt) {
		return AuthResult{}, ErrUnauthorized
	}

	newSID, err := NewSessionID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}
	newRefreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	newExpiresAt := s.now().Add(s.refreshTTL)
	if err := s.sessions.RotateRefresh(ctx, session.SID, newSID, refreshToken, newRefreshToken, newExpiresAt, s.idleTTL); err != nil {
		if errors.Is(err, ErrRefreshNotFound) {
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, fmt.Errorf("rotate session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(session.AccountID, newSID, session.Role)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  newRefreshToken,
		AccessExpires: accessExpires,
		Me: Me{
			ID:   session.AccountID,
			Role: session.Role,
		},
	}, nil
}

// ValidateAccessToken checks the JWT, requires the backing session to still
// exist, and slides the idle timeout forward.
func (s *Service) ValidateAccessToken(ctx context.Context, raw string) (AccessClaims, error) {
	if s.jwt == nil || s.sessions == nil {
		return AccessClaims{}, fmt.Errorf("auth service dependencies are not configured")
	}

	claims, err := s.jwt.ParseAccessToken(raw)
	if err != nil {
		return AccessClaims{}, err
	}

	if _, err := s.sessions.GetSession(ctx, claims.SID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return AccessClaims{}, ErrUnauthorized
		}
		return AccessClaims{}, fmt.Errorf("load session: %w", err)
	}

	_ = s.sessions.Touch(ctx, claims.SID, s.idleTTL)
	if s.accounts != nil {
		_ = s.accounts.TouchLastActive(ctx, claims.AccountID)
	}

	return claims, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if s.sessions == nil {
		return fmt.Errorf("auth service session store is not configured")
	}
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	record, recordErr := s.sessions.GetSession(ctx, sid)
	if err := s.sessions.DeleteSession(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if recordErr == nil {
		s.recordAudit(ctx, record.AccountID, enums.AuditActionLogout,
			fmt.Sprintf("Account #%d logged out", record.AccountID))
	}
	return nil
}

func (s *Service) LogoutAll(ctx context.Context, accountID int64) error {
	if s.sessions == nil {
		return fmt.Errorf("auth service session store is not configured")
	}
	if accountID <= 0 {
		return ErrInvalidInput
	}
	if err := s.sessions.DeleteAllForAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete account sessions: %w", err)
	}
	return nil
}

func (s *Service) issueForAccount(ctx context.Context, account model.Account) (AuthResult, error) {
	sid, err := NewSessionID()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session id: %w", err)
	}
	refreshToken, err := NewRefreshToken()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate refresh token: %w", err)
	}

	now := s.now().UTC()
	session := SessionRecord{
		SID:       sid,
		AccountID: account.ID,
		Role:      string(account.Role),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	if err := s.sessions.Create(ctx, session, refreshToken, s.idleTTL); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(account.ID, sid, string(account.Role))
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
		Me: Me{
			ID:          account.ID,
			DisplayName: account.DisplayName,
			Email:       account.Email,
			Role:        string(account.Role),
		},
	}, nil
}
