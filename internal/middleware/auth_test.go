package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"admindash/internal/auth"
	"admindash/internal/model"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
}

func identityEcho(t *testing.T, got *auth.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("expected identity on request context")
		}
		*got = identity
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTestTokens()
	want := auth.Identity{UserID: "64b0c4f2a1d2e3f4a5b6c7d8", Name: "Alice", Role: model.RoleAdmin}
	token, _, err := tokens.Issue(want)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	var got auth.Identity
	handler := RequireAuth(tokens)(identityEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got != want {
		t.Fatalf("identity = %+v, want %+v", got, want)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := newTestTokens()
	expired := auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"), -time.Minute)
	expiredToken, _, err := expired.Issue(auth.Identity{UserID: "x", Name: "n", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatalf("handler must not run")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json body: %v", err)
			}
			if body["status"] != "error" || body["message"] != "Not authorized to access this route" {
				t.Fatalf("unexpected body: %v", body)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tokens := newTestTokens()
	adminToken, _, err := tokens.Issue(auth.Identity{UserID: "a", Name: "Admin", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	userToken, _, err := tokens.Issue(auth.Identity{UserID: "u", Name: "User", Role: model.RoleUser})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	handler := RequireAuth(tokens)(RequireRole(model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user status = %d, want 403", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	if body["message"] != "You do not have permission to perform this action" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRequireRole_NoIdentity(t *testing.T) {
	handler := RequireRole(model.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
