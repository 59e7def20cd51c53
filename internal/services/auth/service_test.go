package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Thenukee/JobMarket-sub000/internal/domain/enums"
	"github.com/Thenukee/JobMarket-sub000/internal/domain/model"
	pgrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/postgres"
	redisrepo "github.com/Thenukee/JobMarket-sub000/internal/repo/redis"
	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
)

type fakeAccountStore struct {
	nextID  int64
	byEmail map[string]model.Account
	logins  []int64
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{nextID: 1, byEmail: map[string]model.Account{}}
}

func (f *fakeAccountStore) Create(_ context.Context, displayName, email, passwordHash, role, status string, companyName *string) (model.Account, error) {
	if _, ok := f.byEmail[email]; ok {
		return model.Account{}, pgrepo.ErrEmailTaken
	}
	account := model.Account{
		ID:           f.nextID,
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         enums.Role(role),
		Status:       enums.AccountStatus(status),
		CompanyName:  companyName,
	}
	f.nextID++
	f.byEmail[email] = account
	return account, nil
}

func (f *fakeAccountStore) FindByEmail(_ context.Context, email string) (model.Account, error) {
	account, ok := f.byEmail[email]
	if !ok {
		return model.Account{}, pgrepo.ErrAccountNotFound
	}
	return account, nil
}

func (f *fakeAccountStore) TouchLastLogin(_ context.Context, id int64) error {
	f.logins = append(f.logins, id)
	return nil
}

func (f *fakeAccountStore) TouchLastActive(_ context.Context, _ int64) error {
	return nil
}

type env struct {
	svc      *authsvc.Service
	accounts *fakeAccountStore
	redis    *miniredis.Miniredis
}

func newEnv(t *testing.T) *env {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	accounts := newFakeAccountStore()
	sessions := redisrepo.NewSessionRepo(client)
	jwt := authsvc.NewJWTManager("test-secret", 15*time.Minute)

	return &env{
		svc:      authsvc.NewService(accounts, sessions, jwt, 7*24*time.Hour, 2*time.Hour),
		accounts: accounts,
		redis:    mini,
	}
}

func register(t *testing.T, e *env, email string) model.Account {
	t.Helper()
	account, err := e.svc.Register(context.Background(), authsvc.RegisterInput{
		DisplayName: "Test User",
		Email:       email,
		Password:    "hunter2hunter2",
		Role:        string(enums.RoleSeeker),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return account
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input authsvc.RegisterInput
	}{
		{"short password", authsvc.RegisterInput{DisplayName: "A", Email: "a@b.c", Password: "short", Role: "seeker"}},
		{"bad email", authsvc.RegisterInput{DisplayName: "A", Email: "not-an-email", Password: "hunter2hunter2", Role: "seeker"}},
		{"admin role forbidden", authsvc.RegisterInput{DisplayName: "A", Email: "a@b.c", Password: "hunter2hunter2", Role: "admin"}},
		{"employer without company", authsvc.RegisterInput{DisplayName: "A", Email: "a@b.c", Password: "hunter2hunter2", Role: "employer"}},
	}
	for _, tc := range cases {
		if _, err := e.svc.Register(ctx, tc.input); !errors.Is(err, authsvc.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	register(t, e, "dup@example.com")

	_, err := e.svc.Register(context.Background(), authsvc.RegisterInput{
		DisplayName: "Other",
		Email:       "dup@example.com",
		Password:    "hunter2hunter2",
		Role:        string(enums.RoleSeeker),
	})
	if !errors.Is(err, authsvc.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginIssuesWorkingAccessToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	account := register(t, e, "login@example.com")

	result, err := e.svc.Login(ctx, "login@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected both tokens issued")
	}
	if result.Me.ID != account.ID {
		t.Fatalf("expected account id %d, got %d", account.ID, result.Me.ID)
	}

	claims, err := e.svc.ValidateAccessToken(ctx, result.AccessToken)
	if err != nil {
		t.Fatalf("validate access token: %v", err)
	}
	if claims.AccountID != account.ID || claims.Role != string(enums.RoleSeeker) {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if len(e.accounts.logins) != 1 {
		t.Fatalf("expected last-login touch, got %v", e.accounts.logins)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newEnv(t)
	register(t, e, "who@example.com")

	_, err := e.svc.Login(context.Background(), "who@example.com", "wrong-password")
	if !errors.Is(err, authsvc.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	e := newEnv(t)
	register(t, e, "suspended@example.com")
	account := e.accounts.byEmail["suspended@example.com"]
	account.Status = enums.AccountStatusSuspended
	e.accounts.byEmail["suspended@example.com"] = account

	_, err := e.svc.Login(context.Background(), "suspended@example.com", "hunter2hunter2")
	if !errors.Is(err, authsvc.ErrAccountNotActive) {
		t.Fatalf("expected ErrAccountNotActive, got %v", err)
	}
}

func TestIdleTimeoutEndsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "idle@example.com")

	result, err := e.svc.Login(ctx, "idle@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	e.redis.FastForward(3 * time.Hour)

	if _, err := e.svc.ValidateAccessToken(ctx, result.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after idle timeout, got %v", err)
	}
}

func TestValidateSlidesIdleWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "active@example.com")

	result, err := e.svc.Login(ctx, "active@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Keep validating inside the idle window; the session must stay alive
	// past the original two-hour deadline.
	for i := 0; i < 3; i++ {
		e.redis.FastForward(90 * time.Minute)
		if _, err := e.svc.ValidateAccessToken(ctx, result.AccessToken); err != nil {
			t.Fatalf("pass %d: expected session alive, got %v", i, err)
		}
	}
}

func TestRefreshRotatesTokenAndSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "rotate@example.com")

	login, err := e.svc.Login(ctx, "rotate@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := e.svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected a new refresh token")
	}

	// Old refresh token and old session are both dead.
	if _, err := e.svc.Refresh(ctx, login.RefreshToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("expected old refresh token rejected, got %v", err)
	}
	if _, err := e.svc.ValidateAccessToken(ctx, login.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("expected old access token rejected, got %v", err)
	}
	if _, err := e.svc.ValidateAccessToken(ctx, refreshed.AccessToken); err != nil {
		t.Fatalf("expected new access token accepted, got %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	register(t, e, "logout@example.com")

	login, err := e.svc.Login(ctx, "logout@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := e.svc.ValidateAccessToken(ctx, login.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := e.svc.Logout(ctx, claims.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := e.svc.ValidateAccessToken(ctx, login.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("expected session gone after logout, got %v", err)
	}
}
