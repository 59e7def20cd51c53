package apiapp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authsvc "github.com/Thenukee/JobMarket-sub000/internal/services/auth"
)

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc123", "abc123", true},
		{"bearer abc123", "abc123", true},
		{"  Bearer abc123", "abc123", true},
		{"Bearer ", "", false},
		{"Basic abc123", "", false},
		{"abc123", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		token, ok := extractBearerToken(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("header %q: got (%q, %v), want (%q, %v)", tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole("admin")(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/activity", nil)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		AccountID: 1,
		Role:      "admin",
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rr.Code)
	}
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not run")
	})
	handler := RequireRole("admin")(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/activity", nil)
	req = req.WithContext(authsvc.WithIdentity(req.Context(), authsvc.Identity{
		AccountID: 2,
		Role:      "employer",
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	handler := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler must not run")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/admin/activity", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
