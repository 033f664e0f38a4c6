package handlers

import (
	"context"
	"sync"

	"github.com/HammerMeetNail/quizdash/internal/models"
	"github.com/HammerMeetNail/quizdash/internal/services"
	"github.com/HammerMeetNail/quizdash/internal/testutil"
)

var fixtureTime = testutil.FixtureTime

// fakeStore is a SnapshotStore and SnapshotReader backed by fixed snapshots.
type fakeStore struct {
	mu         sync.Mutex
	current    *services.Snapshot
	next       *services.Snapshot
	refreshing bool
	loads      int
	refreshes  int
}

func (f *fakeStore) Load(ctx context.Context) *services.Snapshot {
	f.mu.Lock()
	f.loads++
	snap := f.current
	f.mu.Unlock()
	if snap != nil {
		return snap
	}
	return f.Refresh(ctx)
}

func (f *fakeStore) Refresh(ctx context.Context) *services.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshes++
	if f.next != nil {
		f.current = f.next
	}
	if f.current == nil {
		f.current = &services.Snapshot{Responses: []models.QuizResponse{}, Source: services.SourceStore}
	}
	return f.current
}

func (f *fakeStore) Current() *services.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

func (f *fakeStore) Refreshing() bool {
	return f.refreshing
}

type fakeAssets struct{}

func (fakeAssets) GetCSS() string { return "/static/css/dashboard.css" }
func (fakeAssets) GetJS() string  { return "/static/js/dashboard.js" }

func snapshotOf(responses ...models.QuizResponse) *services.Snapshot {
	return &services.Snapshot{Responses: responses, FetchedAt: fixtureTime, Source: services.SourceStore}
}

func newResponse(name, email string, result int) models.QuizResponse {
	return testutil.NewResponse(name, email, result)
}

func sampleResponses() []models.QuizResponse {
	return []models.QuizResponse{
		newResponse("Ana Lima", "ana@x.com", 1),
		newResponse("Bo Chen", "bo@y.com", 2),
		newResponse("Cy Diaz", "cy@x.com", 1),
		newResponse("Di Evans", "di@z.com", 99),
	}
}
