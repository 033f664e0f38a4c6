package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/HammerMeetNail/quizdash/internal/handlers"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestBasicAuth_Disabled(t *testing.T) {
	auth := NewBasicAuth("admin", "")
	if auth.Enabled() {
		t.Fatal("expected auth to be disabled without a hash")
	}

	called := false
	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("expected handler to be called when auth is disabled")
	}
}

func TestBasicAuth_RequireAuth(t *testing.T) {
	auth := NewBasicAuth("admin", hashPassword(t, "s3cret"))

	tests := []struct {
		name     string
		user     string
		pass     string
		setAuth  bool
		expected int
	}{
		{"no credentials", "", "", false, http.StatusUnauthorized},
		{"wrong password", "admin", "nope", true, http.StatusUnauthorized},
		{"wrong user", "root", "s3cret", true, http.StatusUnauthorized},
		{"valid", "admin", "s3cret", true, http.StatusOK},
		{"valid again", "admin", "s3cret", true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var operator string
			handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				operator = handlers.GetOperatorFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Fatalf("expected status %d, got %d", tt.expected, rr.Code)
			}
			if tt.expected == http.StatusUnauthorized {
				if rr.Header().Get("WWW-Authenticate") != basicAuthRealm {
					t.Errorf("expected WWW-Authenticate challenge, got %q", rr.Header().Get("WWW-Authenticate"))
				}
				if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON error, got %q", ct)
				}
				return
			}
			if operator != "admin" {
				t.Errorf("expected operator in context, got %q", operator)
			}
		})
	}
}

func TestBasicAuth_CachesVerifiedCredentials(t *testing.T) {
	auth := NewBasicAuth("admin", hashPassword(t, "s3cret"))

	if !auth.check("admin", "s3cret") {
		t.Fatal("expected valid credentials")
	}

	// Corrupt the hash: a cached credential still passes, a new one cannot.
	auth.hash = []byte("invalid")
	if !auth.check("admin", "s3cret") {
		t.Error("expected cached credentials to pass")
	}
	if auth.check("admin", "other") {
		t.Error("expected uncached credentials to be verified against the hash")
	}
}
