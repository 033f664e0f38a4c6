package views

import (
	"github.com/HammerMeetNail/quizdash/internal/models"
)

const cardDateLayout = "Jan 2, 2006"

// ResponseCard is the display form of one response.
type ResponseCard struct {
	ID            string
	Name          string
	Email         string
	Date          string
	CategoryName  string
	Emoji         string
	Badge         models.BadgeVariant
	LegacyComment string
	Reviews       []string
	Answers       []string
}

// BadgeClass returns the CSS classes for the category badge.
func (c ResponseCard) BadgeClass() string {
	if c.Badge == models.BadgeNone {
		return "personality-badge"
	}
	return "personality-badge personality-badge--" + string(c.Badge)
}

// NewResponseCard resolves display fields. The badge and emoji key on the
// result code; the name prefers embedded metadata. Both the legacy comment
// and the reviews are carried when present.
func NewResponseCard(r models.QuizResponse) ResponseCard {
	reviews := make([]string, 0, len(r.Reviews))
	for _, rv := range r.Reviews {
		reviews = append(reviews, rv.ReviewText)
	}
	emoji, badge := models.DefaultEmoji, models.BadgeNone
	if c, ok := models.CategoryFor(r.PersonalityResult); ok {
		emoji, badge = c.Emoji, c.Badge
	}
	return ResponseCard{
		ID:            r.ID.String(),
		Name:          r.Name,
		Email:         r.Email,
		Date:          r.CreatedAt.Format(cardDateLayout),
		CategoryName:  r.CategoryName(),
		Emoji:         emoji,
		Badge:         badge,
		LegacyComment: r.LegacyComment(),
		Reviews:       reviews,
		Answers:       r.Answers(),
	}
}

func NewResponseCards(responses []models.QuizResponse) []ResponseCard {
	cards := make([]ResponseCard, len(responses))
	for i := range responses {
		cards[i] = NewResponseCard(responses[i])
	}
	return cards
}
