// Package views builds the template-facing view models for the dashboard.
// Everything here is derived from the filter engine's output; nothing holds state.
package views

import (
	"math"

	"github.com/HammerMeetNail/quizdash/internal/models"
	"github.com/HammerMeetNail/quizdash/internal/services"
)

const (
	defaultCardColor = "#c62828"
	defaultCardEmoji = "🔸"
)

// StatCard is one per-category summary tile.
type StatCard struct {
	ID      int    `json:"id"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	// Color is the category colour as a hex value for API clients. The page
	// styles tiles through Class instead.
	Color   string `json:"color"`
	Emoji   string `json:"emoji"`
}

// Percent returns count/total as a whole percentage rounded half up, or 0
// when total is 0.
func Percent(count, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Floor(float64(count)/float64(total)*100 + 0.5))
}

// Class returns the CSS classes for the tile. Unknown categories get the
// default red styling.
func (c StatCard) Class() string {
	if b := models.BadgeFor(c.ID); b != models.BadgeNone {
		return "stat-card stat-card--" + string(b)
	}
	return "stat-card"
}

func NewStatCard(label string, count, total int, color, emoji string) StatCard {
	if color == "" {
		color = defaultCardColor
	}
	if emoji == "" {
		emoji = defaultCardEmoji
	}
	return StatCard{
		Label:   label,
		Count:   count,
		Total:   total,
		Percent: Percent(count, total),
		Color:   color,
		Emoji:   emoji,
	}
}

// StatCards returns a tile for every known category, in table order, followed
// by tiles for unknown result codes present in the filtered set.
func StatCards(summary services.Summary) []StatCard {
	cards := make([]StatCard, 0, len(models.Categories))
	for _, c := range models.Categories {
		card := NewStatCard(c.Name, summary.Count(c.ID), summary.Total, c.Color, c.Emoji)
		card.ID = c.ID
		cards = append(cards, card)
	}
	for _, cc := range summary.Counts {
		if _, known := models.CategoryFor(cc.ID); known {
			continue
		}
		card := NewStatCard(models.FallbackLabel(cc.ID), cc.Count, summary.Total, "", models.EmojiFor(cc.ID))
		card.ID = cc.ID
		cards = append(cards, card)
	}
	return cards
}
