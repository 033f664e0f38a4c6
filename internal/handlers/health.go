package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/services"
)

const healthTimeout = 5 * time.Second

type HealthChecker interface {
	Health(ctx context.Context) error
}

// SnapshotReader reports the held snapshot without triggering a fetch.
type SnapshotReader interface {
	Current() *services.Snapshot
	Refreshing() bool
}

type dependency struct {
	name    string
	checker HealthChecker
}

type HealthHandler struct {
	deps      []dependency
	snapshots SnapshotReader
	now       func() time.Time
}

// NewHealthHandler builds the health endpoints. snapshots may be nil.
func NewHealthHandler(db, redis HealthChecker, snapshots SnapshotReader) *HealthHandler {
	return &HealthHandler{
		deps: []dependency{
			{name: "postgres", checker: db},
			{name: "redis", checker: redis},
		},
		snapshots: snapshots,
		now:       time.Now,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp string            `json:"timestamp"`
}

// probe checks every dependency and reports whether all passed.
func (h *HealthHandler) probe(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	checks := make(map[string]string, len(h.deps)+1)
	ok := true
	for _, d := range h.deps {
		if err := d.checker.Health(ctx); err != nil {
			checks[d.name] = "unhealthy: " + err.Error()
			ok = false
			continue
		}
		checks[d.name] = "healthy"
	}
	return checks, ok
}

// Health reports each dependency plus the snapshot state. The snapshot is
// informational; an unloaded dashboard is still healthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks, ok := h.probe(r.Context())
	if h.snapshots != nil {
		checks["snapshot"] = snapshotStatus(h.snapshots)
	}

	response := HealthResponse{
		Status:    "healthy",
		Checks:    checks,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK
	if !ok {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func snapshotStatus(s SnapshotReader) string {
	if s.Refreshing() {
		return "refreshing"
	}
	snap := s.Current()
	if snap == nil {
		return "not loaded"
	}
	return fmt.Sprintf("loaded: %d responses at %s", snap.Len(), snap.FetchedAt.UTC().Format(time.RFC3339))
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.probe(r.Context()); !ok {
		writeText(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	writeText(w, http.StatusOK, "ready")
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "alive")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
