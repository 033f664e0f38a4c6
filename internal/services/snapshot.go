package services

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/models"
)

const (
	SourceStore = "store"
	SourceCache = "cache"

	refreshKey = "refresh"
)

// Snapshot is one immutable fetch result. Callers must not modify Responses.
type Snapshot struct {
	Responses []models.QuizResponse `json:"responses"`
	FetchedAt time.Time             `json:"fetched_at"`
	Source    string                `json:"source"`
}

// Len returns the number of responses held, 0 for a nil snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Responses)
}

// SnapshotCache persists the last successful snapshot outside the process.
type SnapshotCache interface {
	Get(ctx context.Context) ([]models.QuizResponse, time.Time, bool, error)
	Set(ctx context.Context, responses []models.QuizResponse, fetchedAt time.Time) error
}

// Store owns the authoritative response set. Only Replace swaps it; readers
// receive the current snapshot pointer and never see a partial update.
//
// Refreshes that overlap share one fetch: a caller arriving while a fetch is
// in flight waits for it and receives the same snapshot.
type Store struct {
	fetcher ResponseFetcher
	cache   SnapshotCache
	timeout time.Duration
	logger  *logging.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current *Snapshot

	group      singleflight.Group
	refreshing atomic.Bool
}

type StoreOption func(*Store)

// WithCache enables the shared snapshot cache.
func WithCache(cache SnapshotCache) StoreOption {
	return func(s *Store) { s.cache = cache }
}

// WithFetchTimeout bounds each fetch independently of the triggering request.
func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *Store) { s.timeout = d }
}

func WithLogger(logger *logging.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

func withClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(fetcher ResponseFetcher, opts ...StoreOption) *Store {
	s := &Store{
		fetcher: fetcher,
		timeout: 10 * time.Second,
		logger:  logging.Default,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("snapshot")
	return s
}

// Current returns the held snapshot, or nil before the first load.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refreshing reports whether a fetch is in flight.
func (s *Store) Refreshing() bool {
	return s.refreshing.Load()
}

// Replace installs responses as the new snapshot and returns it.
func (s *Store) Replace(responses []models.QuizResponse, source string) *Snapshot {
	snap := &Snapshot{
		Responses: slices.Clone(responses),
		FetchedAt: s.now().UTC(),
		Source:    source,
	}
	if snap.Responses == nil {
		snap.Responses = []models.QuizResponse{}
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
	return snap
}

// Load returns the held snapshot, populating it on first use from the cache
// or, failing that, from the store.
func (s *Store) Load(ctx context.Context) *Snapshot {
	if snap := s.Current(); snap != nil {
		return snap
	}

	if snap := s.loadFromCache(ctx); snap != nil {
		return snap
	}

	return s.Refresh(ctx)
}

func (s *Store) loadFromCache(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}
	responses, fetchedAt, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("Snapshot cache read failed", map[string]interface{}{"error": err.Error()})
		return nil
	}
	if !ok {
		return nil
	}

	snap := &Snapshot{
		Responses: responses,
		FetchedAt: fetchedAt,
		Source:    SourceCache,
	}
	if snap.Responses == nil {
		snap.Responses = []models.QuizResponse{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A refresh may have landed while the cache was read; it wins.
	if s.current != nil {
		return s.current
	}
	s.current = snap
	s.logger.Info("Snapshot loaded from cache", map[string]interface{}{
		"count":      len(responses),
		"fetched_at": fetchedAt.Format(time.RFC3339),
	})
	return snap
}

// Refresh fetches a fresh response set and replaces the snapshot with it.
// A failed fetch yields an empty snapshot; the cache keeps the last non-empty one.
func (s *Store) Refresh(ctx context.Context) *Snapshot {
	ch := s.group.DoChan(refreshKey, func() (interface{}, error) {
		s.refreshing.Store(true)
		defer s.refreshing.Store(false)

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		start := s.now()
		responses := s.fetcher.FetchResponses(fetchCtx)
		snap := s.Replace(responses, SourceStore)

		s.logger.Info("Snapshot refreshed", map[string]interface{}{
			"count":       snap.Len(),
			"duration_ms": s.now().Sub(start).Milliseconds(),
		})

		if s.cache != nil && snap.Len() > 0 {
			if err := s.cache.Set(fetchCtx, snap.Responses, snap.FetchedAt); err != nil {
				s.logger.Warn("Snapshot cache write failed", map[string]interface{}{"error": err.Error()})
			}
		}
		return snap, nil
	})

	select {
	case res := <-ch:
		return res.Val.(*Snapshot)
	case <-ctx.Done():
		// The fetch continues for the other waiters; this caller gets what is held.
		if snap := s.Current(); snap != nil {
			return snap
		}
		return &Snapshot{Responses: []models.QuizResponse{}, Source: SourceStore}
	}
}
