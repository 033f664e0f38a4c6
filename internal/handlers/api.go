package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/models"
	"github.com/HammerMeetNail/quizdash/internal/services"
	"github.com/HammerMeetNail/quizdash/internal/views"
)

type APIHandler struct {
	store  SnapshotStore
	logger *logging.Logger
	now    func() time.Time
}

func NewAPIHandler(store SnapshotStore, logger *logging.Logger) *APIHandler {
	if logger == nil {
		logger = logging.Default
	}
	return &APIHandler{
		store:  store,
		logger: logger.Named("api"),
		now:    time.Now,
	}
}

type ResponsesResponse struct {
	Responses  []models.QuizResponse    `json:"responses"`
	Counts     []services.CategoryCount `json:"counts"`
	Total      int                      `json:"total"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	TotalPages int                      `json:"total_pages"`
	FetchedAt  string                   `json:"fetched_at,omitempty"`
	Refreshing bool                     `json:"refreshing"`
}

type StatsResponse struct {
	Total  int                      `json:"total"`
	Counts []services.CategoryCount `json:"counts"`
	ByName map[string]int           `json:"by_name"`
	Cards  []views.StatCard         `json:"cards"`
}

type RefreshResponse struct {
	Total     int    `json:"total"`
	FetchedAt string `json:"fetched_at"`
	Source    string `json:"source"`
}

// Responses returns one page of the filtered responses with counts over the
// whole filtered set.
func (h *APIHandler) Responses(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Load(r.Context())
	query := views.ParseQuery(r.URL.Query())
	summary := services.Summarize(snap.Responses, query.Criteria())

	pg := views.Paginate(summary.Total, query.Page, query.PerPage)
	lo, hi := pg.Bounds()

	writeJSON(w, http.StatusOK, ResponsesResponse{
		Responses:  summary.Responses[lo:hi],
		Counts:     summary.Counts,
		Total:      summary.Total,
		Page:       pg.Page,
		PerPage:    pg.PerPage,
		TotalPages: pg.TotalPages,
		FetchedAt:  formatTime(snap.FetchedAt),
		Refreshing: h.store.Refreshing(),
	})
}

func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Load(r.Context())
	query := views.ParseQuery(r.URL.Query())
	summary := services.Summarize(snap.Responses, query.Criteria())

	writeJSON(w, http.StatusOK, StatsResponse{
		Total:  summary.Total,
		Counts: summary.Counts,
		ByName: summary.CountsByName(),
		Cards:  views.StatCards(summary),
	})
}

// Refresh refetches the snapshot. Requests that overlap an in-flight fetch
// receive that fetch's result.
func (h *APIHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Refresh(r.Context())
	h.logger.Info("API refresh", map[string]interface{}{
		"count":    snap.Len(),
		"operator": GetOperatorFromContext(r.Context()),
	})

	writeJSON(w, http.StatusOK, RefreshResponse{
		Total:     snap.Len(),
		FetchedAt: formatTime(snap.FetchedAt),
		Source:    snap.Source,
	})
}

// Export streams the filtered set, unpaginated, as CSV.
func (h *APIHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Load(r.Context())
	query := views.ParseQuery(r.URL.Query())
	summary := services.Summarize(snap.Responses, query.Criteria())

	data, err := services.ExportCSV(summary.Responses)
	if err != nil {
		h.logger.Error("CSV export failed", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Failed to export responses")
		return
	}

	filename := fmt.Sprintf("quiz-responses-%s.csv", h.now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
