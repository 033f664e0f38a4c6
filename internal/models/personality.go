package models

import "fmt"

// DefaultEmoji is shown for category ids missing from the lookup table.
const DefaultEmoji = "✨"

// UnknownCategoryName keys counts for responses with no embedded category metadata.
const UnknownCategoryName = "Unknown"

// BadgeVariant selects the badge styling for a category. Variants are keyed
// by category id so a renamed category keeps its badge.
type BadgeVariant string

const (
	BadgeNone        BadgeVariant = ""
	BadgeQuiet       BadgeVariant = "quiet"
	BadgeAction      BadgeVariant = "action"
	BadgeImaginative BadgeVariant = "imaginative"
	BadgeSocial      BadgeVariant = "social"
)

// Category is the static display metadata for a personality result code.
type Category struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Emoji string       `json:"emoji"`
	Color string       `json:"color"`
	Badge BadgeVariant `json:"badge"`
}

const (
	CategoryQuietObserver      = 1
	CategoryActionDriver       = 2
	CategoryImaginativeDreamer = 3
	CategorySocialConnector    = 4
)

// Categories lists the known personality categories in display order.
var Categories = []Category{
	{ID: CategoryQuietObserver, Name: "The Quiet Observer", Emoji: "🧘", Color: "#4caf50", Badge: BadgeQuiet},
	{ID: CategoryActionDriver, Name: "The Action Driver", Emoji: "⚡", Color: "#c62828", Badge: BadgeAction},
	{ID: CategoryImaginativeDreamer, Name: "The Imaginative Dreamer", Emoji: "🎨", Color: "#f57f17", Badge: BadgeImaginative},
	{ID: CategorySocialConnector, Name: "The Social Connector", Emoji: "🤝", Color: "#2196f3", Badge: BadgeSocial},
}

var categoriesByID = func() map[int]Category {
	m := make(map[int]Category, len(Categories))
	for _, c := range Categories {
		m[c.ID] = c
	}
	return m
}()

// CategoryFor returns the known category for id.
func CategoryFor(id int) (Category, bool) {
	c, ok := categoriesByID[id]
	return c, ok
}

// EmojiFor returns the display emoji for a category id, or DefaultEmoji.
func EmojiFor(id int) string {
	if c, ok := CategoryFor(id); ok {
		return c.Emoji
	}
	return DefaultEmoji
}

// BadgeFor returns the badge variant for a category id.
func BadgeFor(id int) BadgeVariant {
	return categoriesByID[id].Badge
}

// LabelFor returns the known category name for id, or "Type N".
func LabelFor(id int) string {
	if c, ok := CategoryFor(id); ok {
		return c.Name
	}
	return FallbackLabel(id)
}

// FallbackLabel is the synthetic label used when no category name is known.
func FallbackLabel(id int) string {
	return fmt.Sprintf("Type %d", id)
}

// IsKnownCategory reports whether id is in the lookup table.
func IsKnownCategory(id int) bool {
	_, ok := CategoryFor(id)
	return ok
}
