package handlers

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/services"
	"github.com/HammerMeetNail/quizdash/internal/views"
)

// SnapshotStore is the subset of services.Store the HTTP layer reads.
type SnapshotStore interface {
	Load(ctx context.Context) *services.Snapshot
	Refresh(ctx context.Context) *services.Snapshot
	Refreshing() bool
}

type AssetPaths interface {
	GetCSS() string
	GetJS() string
}

type PageHandler struct {
	templates *template.Template
	store     SnapshotStore
	assets    AssetPaths
	logger    *logging.Logger
}

func NewPageHandler(templatesDir string, store SnapshotStore, assets AssetPaths, logger *logging.Logger) (*PageHandler, error) {
	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Default
	}

	return &PageHandler{
		templates: templates,
		store:     store,
		assets:    assets,
		logger:    logger.Named("pages"),
	}, nil
}

// ErrorPageData is passed to 404.html and 500.html.
type ErrorPageData struct {
	Title   string
	CSSPath string
}

// Index renders the dashboard for the filters in the query string. The first
// request loads the snapshot; later requests reuse it.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Load(r.Context())
	query := views.ParseQuery(r.URL.Query())

	data := views.BuildDashboard(snap, query, h.store.Refreshing())
	data.CSRFToken = GetCSRFTokenFromContext(r.Context())
	data.CSSPath = h.cssPath()
	if h.assets != nil {
		data.JSPath = h.assets.GetJS()
	}

	h.render(w, r, http.StatusOK, "dashboard.html", data)
}

// Refresh handles the dashboard's refresh form and redirects back to the
// page the operator was viewing.
func (h *PageHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Refresh(r.Context())
	h.logger.Info("Manual refresh", map[string]interface{}{
		"count":    snap.Len(),
		"operator": GetOperatorFromContext(r.Context()),
	})

	http.Redirect(w, r, returnPath(r.FormValue("return_to")), http.StatusSeeOther)
}

// NotFound renders the 404 error page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "404.html", ErrorPageData{Title: "Page not found", CSSPath: h.cssPath()})
}

// InternalError renders the 500 error page.
func (h *PageHandler) InternalError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := h.templates.ExecuteTemplate(w, "500.html", ErrorPageData{Title: "Something went wrong", CSSPath: h.cssPath()}); err != nil {
		h.logger.Error("Error page render failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *PageHandler) cssPath() string {
	if h.assets == nil {
		return ""
	}
	return h.assets.GetCSS()
}

// render buffers the template so a failure can still produce the 500 page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("Template render failed", map[string]interface{}{
			"template": name,
			"error":    err.Error(),
		})
		h.InternalError(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// returnPath accepts only a dashboard URL on this host and falls back to the
// dashboard root.
func returnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return "/"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path != "/" {
		return "/"
	}
	return views.ParseQuery(u.Query()).URL("/")
}
