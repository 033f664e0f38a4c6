package services

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

type fakeDB struct {
	QueryFunc func(ctx context.Context, sql string, args ...any) (Rows, error)
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if f.QueryFunc != nil {
		return f.QueryFunc(ctx, sql, args...)
	}
	return &fakeRows{}, nil
}

// fakeRows assigns each row's values to Scan destinations by reflection.
// A nil value zeroes the destination, which mirrors SQL NULL into a pointer.
type fakeRows struct {
	rows    [][]any
	idx     int
	err     error
	scanErr error
	closed  bool
}

func (f *fakeRows) Next() bool {
	if f.idx >= len(f.rows) {
		return false
	}
	f.idx++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	if f.scanErr != nil {
		return f.scanErr
	}
	row := f.rows[f.idx-1]
	if len(row) != len(dest) {
		return fmt.Errorf("scan: expected %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		target := reflect.ValueOf(dest[i]).Elem()
		if v == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		value := reflect.ValueOf(v)
		if target.Kind() == reflect.Pointer && value.Kind() != reflect.Pointer {
			ptr := reflect.New(target.Type().Elem())
			ptr.Elem().Set(value)
			value = ptr
		}
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("scan: column %d: cannot assign %s to %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}

func (f *fakeRows) Err() error { return f.err }
func (f *fakeRows) Close()     { f.closed = true }

// responseRow builds a row in listResponsesSQL column order.
func responseRow(id uuid.UUID, name, email string, result int, createdAt time.Time, typeName any, reviews string) []any {
	var typeID, typeDesc any
	if typeName != nil {
		typeID = result
		typeDesc = "description"
	}
	return []any{
		id, email, name,
		"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8",
		result, createdAt, nil,
		typeID, typeName, typeDesc,
		[]byte(reviews),
	}
}

type fakeFetcher struct {
	mu        sync.Mutex
	calls     int
	responses []models.QuizResponse
	block     chan struct{}
	started   chan struct{}
}

func (f *fakeFetcher) FetchResponses(ctx context.Context) []models.QuizResponse {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	return f.responses
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu        sync.Mutex
	stored    []models.QuizResponse
	fetchedAt time.Time
	hit       bool
	getErr    error
	setErr    error
	sets      int
}

func (f *fakeCache) Get(ctx context.Context) ([]models.QuizResponse, time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, time.Time{}, false, f.getErr
	}
	return f.stored, f.fetchedAt, f.hit, nil
}

func (f *fakeCache) Set(ctx context.Context, responses []models.QuizResponse, fetchedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.stored = responses
	f.fetchedAt = fetchedAt
	f.hit = true
	return nil
}

func (f *fakeCache) Sets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

func sampleResponse(name, email string, result int) models.QuizResponse {
	r := models.QuizResponse{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		PersonalityResult: result,
		CreatedAt:         time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if c, ok := models.CategoryFor(result); ok {
		r.PersonalityType = &models.PersonalityType{ID: c.ID, Name: c.Name}
	}
	return r
}
