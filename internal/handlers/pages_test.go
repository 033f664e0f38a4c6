package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

const templatesDir = "../../web/templates"

func newTestPageHandler(t *testing.T, store *fakeStore) *PageHandler {
	t.Helper()
	handler, err := NewPageHandler(templatesDir, store, fakeAssets{}, nil)
	if err != nil {
		t.Fatalf("failed to create page handler: %v", err)
	}
	return handler
}

func TestPageHandler_Index(t *testing.T) {
	store := &fakeStore{current: snapshotOf(sampleResponses()...)}
	handler := newTestPageHandler(t, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(SetCSRFTokenInContext(req.Context(), "tok123"))
	rr := httptest.NewRecorder()

	handler.Index(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}

	body := rr.Body.String()
	for _, want := range []string{
		`<div class="total-value">4</div>`,
		"Ana Lima",
		"Type 99",
		"The Quiet Observer",
		"50%",
		`value="tok123"`,
		"Showing 1-4 of 4",
		"/static/css/dashboard.css",
		"/static/js/dashboard.js",
		"personality-badge personality-badge--quiet",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	if strings.Contains(body, "No responses found") {
		t.Error("did not expect empty state")
	}
	if store.refreshes != 0 {
		t.Errorf("expected held snapshot to be reused, got %d refreshes", store.refreshes)
	}
}

func TestPageHandler_Index_FirstLoadFetches(t *testing.T) {
	store := &fakeStore{next: snapshotOf(sampleResponses()...)}
	handler := newTestPageHandler(t, store)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if store.refreshes != 1 {
		t.Fatalf("expected one fetch on first load, got %d", store.refreshes)
	}

	rr = httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/?type=2&q=bo", nil))
	if store.refreshes != 1 {
		t.Errorf("filter change must not refetch, got %d fetches", store.refreshes)
	}
	if !strings.Contains(rr.Body.String(), "Bo Chen") || strings.Contains(rr.Body.String(), "Ana Lima") {
		t.Error("expected only the filtered response")
	}
}

func TestPageHandler_Index_Filtered(t *testing.T) {
	store := &fakeStore{current: snapshotOf(sampleResponses()...)}
	handler := newTestPageHandler(t, store)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/?type=1&q=X.COM", nil))

	body := rr.Body.String()
	if !strings.Contains(body, `<div class="total-value">2</div>`) {
		t.Error("expected total of 2 filtered responses")
	}
	if strings.Contains(body, "Bo Chen") || strings.Contains(body, "Di Evans") {
		t.Error("expected other categories to be filtered out")
	}
	if !strings.Contains(body, "100%") {
		t.Error("expected Quiet Observer at 100%")
	}
	if !strings.Contains(body, `href="/api/responses/export?q=X.COM&amp;type=1"`) {
		t.Error("expected export link to carry filters")
	}
}

func TestPageHandler_Index_EmptyState(t *testing.T) {
	store := &fakeStore{current: snapshotOf()}
	handler := newTestPageHandler(t, store)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "No responses found") {
		t.Error("expected empty state message")
	}
	if !strings.Contains(body, `<div class="total-value">0</div>`) {
		t.Error("expected total of 0")
	}
	if strings.Contains(body, "Showing") {
		t.Error("expected no pagination in empty state")
	}
}

func TestPageHandler_Index_Refreshing(t *testing.T) {
	store := &fakeStore{current: snapshotOf(sampleResponses()...), refreshing: true}
	handler := newTestPageHandler(t, store)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rr.Body.String()
	if !strings.Contains(body, "⏳") || !strings.Contains(body, "disabled>⏳") {
		t.Error("expected disabled hourglass refresh button")
	}
}

func TestPageHandler_Index_EscapesContent(t *testing.T) {
	evil := newResponse("<script>alert(1)</script>", "e@x.com", models.CategoryActionDriver)
	store := &fakeStore{current: snapshotOf(evil)}
	handler := newTestPageHandler(t, store)

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Contains(rr.Body.String(), "<script>alert(1)</script>") {
		t.Fatal("expected response name to be escaped")
	}
}

func TestPageHandler_Refresh(t *testing.T) {
	store := &fakeStore{current: snapshotOf(), next: snapshotOf(sampleResponses()...)}
	handler := newTestPageHandler(t, store)

	tests := []struct {
		name     string
		returnTo string
		expected string
	}{
		{"keeps filters", "/?type=2&q=bo&junk=1", "/?q=bo&type=2"},
		{"empty", "", "/"},
		{"absolute url", "https://evil.example/", "/"},
		{"protocol relative", "//evil.example/", "/"},
		{"other path", "/api/stats", "/"},
		{"backslash", "/\\evil.example", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{"return_to": {tt.returnTo}}
			req := httptest.NewRequest(http.MethodPost, "/refresh", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()

			handler.Refresh(rr, req)

			if rr.Code != http.StatusSeeOther {
				t.Fatalf("expected status 303, got %d", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != tt.expected {
				t.Errorf("expected redirect to %q, got %q", tt.expected, loc)
			}
		})
	}

	if store.refreshes != len(tests) {
		t.Errorf("expected %d refreshes, got %d", len(tests), store.refreshes)
	}
	if store.Current().Len() != 4 {
		t.Errorf("expected refreshed snapshot to be held")
	}
}

func TestPageHandler_Errors(t *testing.T) {
	handler := newTestPageHandler(t, &fakeStore{})

	t.Run("not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "404") {
			t.Error("expected 404 page body")
		}
	})

	t.Run("internal error", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.InternalError(rr, httptest.NewRequest(http.MethodGet, "/err", nil))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("expected status 500, got %d", rr.Code)
		}
	})
}

func TestPageHandler_RenderFailureFallsBackTo500(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"dashboard.html": `{{.Missing.Field}}`,
		"404.html":       `not found`,
		"500.html":       `server error`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write template: %v", err)
		}
	}

	handler, err := NewPageHandler(dir, &fakeStore{current: snapshotOf()}, nil, nil)
	if err != nil {
		t.Fatalf("failed to create page handler: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
	if rr.Body.String() != "server error" {
		t.Errorf("expected only the error page, got %q", rr.Body.String())
	}
}

func TestPageHandler_NewPageHandler_InvalidDir(t *testing.T) {
	_, err := NewPageHandler(filepath.Join(os.TempDir(), "nope"), &fakeStore{}, nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
}
