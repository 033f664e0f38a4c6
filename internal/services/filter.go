package services

import (
	"slices"
	"strings"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

// Criteria are the operator's current filter selections. An empty category
// set and an empty search both mean "no filter".
type Criteria struct {
	Categories []int  `json:"categories"`
	Search     string `json:"search"`
}

// IsEmpty reports whether the criteria filter nothing out.
func (c Criteria) IsEmpty() bool {
	return len(c.Categories) == 0 && c.Search == ""
}

func (c Criteria) matchesCategory(r *models.QuizResponse) bool {
	return len(c.Categories) == 0 || slices.Contains(c.Categories, r.PersonalityResult)
}

// matchesSearch expects needle to be lowercased already.
func matchesSearch(r *models.QuizResponse, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Email), needle)
}

// Filter returns the responses matching both the category set and the
// case-insensitive name/email search, in input order. The input is not modified.
func Filter(responses []models.QuizResponse, c Criteria) []models.QuizResponse {
	if c.IsEmpty() {
		return append(make([]models.QuizResponse, 0, len(responses)), responses...)
	}
	needle := strings.ToLower(c.Search)
	filtered := make([]models.QuizResponse, 0, len(responses))
	for i := range responses {
		r := &responses[i]
		if !c.matchesCategory(r) || !matchesSearch(r, needle) {
			continue
		}
		filtered = append(filtered, *r)
	}
	return filtered
}

// CategoryCount is the number of filtered responses with one result code.
type CategoryCount struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CountByCategory buckets responses by result code, ordered by id. A bucket
// is named from the first embedded category metadata seen for it, or
// models.UnknownCategoryName when none of its responses carry metadata.
func CountByCategory(responses []models.QuizResponse) []CategoryCount {
	index := make(map[int]int)
	counts := []CategoryCount{}
	for i := range responses {
		r := &responses[i]
		pos, ok := index[r.PersonalityResult]
		if !ok {
			pos = len(counts)
			index[r.PersonalityResult] = pos
			counts = append(counts, CategoryCount{ID: r.PersonalityResult, Name: models.UnknownCategoryName})
		}
		counts[pos].Count++
		if counts[pos].Name == models.UnknownCategoryName && r.CountKey() != models.UnknownCategoryName {
			counts[pos].Name = r.CountKey()
		}
	}
	slices.SortFunc(counts, func(a, b CategoryCount) int { return a.ID - b.ID })
	return counts
}

// Summary is the engine output for one set of criteria.
type Summary struct {
	Criteria  Criteria              `json:"criteria"`
	Responses []models.QuizResponse `json:"responses"`
	Counts    []CategoryCount       `json:"counts"`
	Total     int                   `json:"total"`
}

// Summarize filters responses and aggregates the filtered subset.
func Summarize(responses []models.QuizResponse, c Criteria) Summary {
	filtered := Filter(responses, c)
	return Summary{
		Criteria:  c,
		Responses: filtered,
		Counts:    CountByCategory(filtered),
		Total:     len(filtered),
	}
}

// Count returns the filtered count for one result code.
func (s Summary) Count(id int) int {
	for _, c := range s.Counts {
		if c.ID == id {
			return c.Count
		}
	}
	return 0
}

// CountsByName keys the filtered counts by embedded category name, with
// responses lacking metadata under models.UnknownCategoryName.
func (s Summary) CountsByName() map[string]int {
	byName := make(map[string]int)
	for i := range s.Responses {
		byName[s.Responses[i].CountKey()]++
	}
	return byName
}
