package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HammerMeetNail/quizdash/internal/logging"
	"github.com/HammerMeetNail/quizdash/internal/models"
)

// listResponsesSQL reads every response with its category metadata and its
// reviews, newest first. Reviews are aggregated per response so the result
// stays one row per response.
const listResponsesSQL = `SELECT r.id, r.email, r.name,
       r.q1, r.q2, r.q3, r.q4, r.q5, r.q6, r.q7, r.q8,
       r.personality_result, r.created_at, r.review_comments,
       pt.id, pt.name, pt.description,
       COALESCE((
         SELECT json_agg(json_build_object(
                  'id', v.id,
                  'review_text', v.review_text,
                  'created_at', v.created_at,
                  'response_id', v.response_id
                ) ORDER BY v.created_at)
         FROM reviews v
         WHERE v.response_id = r.id
       ), '[]'::json)
FROM responses r
LEFT JOIN personality_types pt ON pt.id = r.personality_result
ORDER BY r.created_at DESC`

// ResponseFetcher returns the current response set. Implementations never
// fail; an unreachable store yields an empty set.
type ResponseFetcher interface {
	FetchResponses(ctx context.Context) []models.QuizResponse
}

type ResponseService struct {
	db     DBConn
	logger *logging.Logger
}

func NewResponseService(db DBConn, logger *logging.Logger) *ResponseService {
	if logger == nil {
		logger = logging.Default
	}
	return &ResponseService{db: db, logger: logger.Named("responses")}
}

// List runs the joined read and returns the responses ordered by creation
// time descending.
func (s *ResponseService) List(ctx context.Context) ([]models.QuizResponse, error) {
	rows, err := s.db.Query(ctx, listResponsesSQL)
	if err != nil {
		return nil, fmt.Errorf("querying responses: %w", err)
	}
	defer rows.Close()

	responses := []models.QuizResponse{}
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating responses: %w", err)
	}

	return responses, nil
}

// FetchResponses is List with failures logged and converted to an empty set.
func (s *ResponseService) FetchResponses(ctx context.Context) []models.QuizResponse {
	responses, err := s.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Error fetching responses")
		return []models.QuizResponse{}
	}
	s.logger.Debug("Fetched responses", map[string]interface{}{"count": len(responses)})
	return responses
}

func scanResponse(rows Rows) (models.QuizResponse, error) {
	var (
		r           models.QuizResponse
		typeID      *int
		typeName    *string
		typeDesc    *string
		reviewsJSON []byte
	)

	if err := rows.Scan(
		&r.ID, &r.Email, &r.Name,
		&r.Q1, &r.Q2, &r.Q3, &r.Q4, &r.Q5, &r.Q6, &r.Q7, &r.Q8,
		&r.PersonalityResult, &r.CreatedAt, &r.ReviewComments,
		&typeID, &typeName, &typeDesc,
		&reviewsJSON,
	); err != nil {
		return models.QuizResponse{}, fmt.Errorf("scanning response: %w", err)
	}

	if typeID != nil {
		pt := &models.PersonalityType{ID: *typeID}
		if typeName != nil {
			pt.Name = *typeName
		}
		if typeDesc != nil {
			pt.Description = *typeDesc
		}
		r.PersonalityType = pt
	}

	reviews, err := decodeReviews(reviewsJSON)
	if err != nil {
		return models.QuizResponse{}, fmt.Errorf("decoding reviews for response %s: %w", r.ID, err)
	}
	r.Reviews = reviews

	return r, nil
}

func decodeReviews(data []byte) ([]models.Review, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, nil
	}
	return reviews, nil
}
