// Package testutil builds quiz-response fixtures and small HTTP assertions
// shared by package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

// FixtureTime is the CreatedAt of every fixture response.
var FixtureTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// ResponseOption customises a fixture response.
type ResponseOption func(*models.QuizResponse)

// WithoutMetadata drops the embedded category, as a failed join would.
func WithoutMetadata() ResponseOption {
	return func(r *models.QuizResponse) { r.PersonalityType = nil }
}

func WithCreatedAt(t time.Time) ResponseOption {
	return func(r *models.QuizResponse) { r.CreatedAt = t }
}

func WithLegacyComment(comment string) ResponseOption {
	return func(r *models.QuizResponse) { r.ReviewComments = &comment }
}

// WithReviews attaches reviews in the given order.
func WithReviews(texts ...string) ResponseOption {
	return func(r *models.QuizResponse) {
		for i, text := range texts {
			r.Reviews = append(r.Reviews, models.Review{
				ID:         uuid.New(),
				ResponseID: r.ID,
				ReviewText: text,
				CreatedAt:  r.CreatedAt.Add(time.Duration(i) * time.Minute),
			})
		}
	}
}

// NewResponse returns a response with answers filled in. Known result codes
// carry embedded category metadata; unknown ones do not.
func NewResponse(name, email string, result int, opts ...ResponseOption) models.QuizResponse {
	r := models.QuizResponse{
		ID:                uuid.New(),
		Name:              name,
		Email:             email,
		PersonalityResult: result,
		CreatedAt:         FixtureTime,
		Q1:                "a",
		Q2:                "b",
		Q3:                "c",
		Q4:                "d",
		Q5:                "a",
		Q6:                "b",
		Q7:                "c",
		Q8:                "d",
	}
	if models.IsKnownCategory(result) {
		r.PersonalityType = &models.PersonalityType{ID: result, Name: models.LabelFor(result)}
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Responses returns n responses named "User 00".. with result codes cycling
// through the four known categories.
func Responses(n int) []models.QuizResponse {
	out := make([]models.QuizResponse, n)
	for i := range out {
		out[i] = NewResponse(fmt.Sprintf("User %02d", i), fmt.Sprintf("user%02d@x.com", i), i%4+1)
	}
	return out
}

// AssertStatusCode checks if the response has the expected status code.
func AssertStatusCode(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rr.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, rr.Code, rr.Body.String())
	}
}

// DecodeJSON unmarshals a recorded JSON body into v.
func DecodeJSON(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse JSON response %q: %v", rr.Body.String(), err)
	}
}
