package models

import (
	"time"

	"github.com/google/uuid"
)

// PersonalityType is the category metadata joined from personality_types.
type PersonalityType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Review is a free-text comment attached to one response.
type Review struct {
	ID         uuid.UUID `json:"id"`
	ResponseID uuid.UUID `json:"response_id"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuizResponse is one submitted quiz with its computed personality result.
type QuizResponse struct {
	ID                uuid.UUID        `json:"id"`
	Email             string           `json:"email"`
	Name              string           `json:"name"`
	Q1                string           `json:"q1"`
	Q2                string           `json:"q2"`
	Q3                string           `json:"q3"`
	Q4                string           `json:"q4"`
	Q5                string           `json:"q5"`
	Q6                string           `json:"q6"`
	Q7                string           `json:"q7"`
	Q8                string           `json:"q8"`
	PersonalityResult int              `json:"personality_result"`
	CreatedAt         time.Time        `json:"created_at"`
	ReviewComments    *string          `json:"review_comments,omitempty"`
	Reviews           []Review         `json:"reviews,omitempty"`
	PersonalityType   *PersonalityType `json:"personality_types,omitempty"`
}

// CategoryName returns the embedded category name, falling back to "Type N"
// derived from the result code.
func (r *QuizResponse) CategoryName() string {
	if r.PersonalityType != nil && r.PersonalityType.Name != "" {
		return r.PersonalityType.Name
	}
	return FallbackLabel(r.PersonalityResult)
}

// CountKey is the name a response is counted under: the embedded category
// name, or UnknownCategoryName when the metadata is missing.
func (r *QuizResponse) CountKey() string {
	if r.PersonalityType != nil && r.PersonalityType.Name != "" {
		return r.PersonalityType.Name
	}
	return UnknownCategoryName
}

// Answers returns the eight question answers in order.
func (r *QuizResponse) Answers() []string {
	return []string{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5, r.Q6, r.Q7, r.Q8}
}

// LegacyComment returns the single review_comments value, or "" when unset.
func (r *QuizResponse) LegacyComment() string {
	if r.ReviewComments == nil {
		return ""
	}
	return *r.ReviewComments
}
