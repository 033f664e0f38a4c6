package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

var exportHeader = []string{
	"id", "created_at", "name", "email",
	"personality_result", "personality_type",
	"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8",
	"review_comments", "reviews",
}

// csvSafe prefixes respondent-supplied text that a spreadsheet would
// evaluate as a formula.
func csvSafe(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

// ExportCSV renders responses as CSV, one row per response in input order.
// Reviews are joined with " | " in fetch order. Free-text cells pass
// through csvSafe.
func ExportCSV(responses []models.QuizResponse) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}

	for i := range responses {
		r := &responses[i]
		reviews := make([]string, 0, len(r.Reviews))
		for _, rv := range r.Reviews {
			reviews = append(reviews, rv.ReviewText)
		}

		rec := make([]string, 0, len(exportHeader))
		rec = append(rec,
			r.ID.String(),
			r.CreatedAt.UTC().Format(time.RFC3339),
			csvSafe(r.Name),
			csvSafe(r.Email),
			strconv.Itoa(r.PersonalityResult),
			csvSafe(r.CategoryName()),
		)
		for _, answer := range r.Answers() {
			rec = append(rec, csvSafe(answer))
		}
		rec = append(rec, csvSafe(r.LegacyComment()), csvSafe(strings.Join(reviews, " | ")))

		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
