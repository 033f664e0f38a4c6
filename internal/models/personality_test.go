package models

import "testing"

func TestEmojiFor(t *testing.T) {
	tests := []struct {
		id       int
		expected string
	}{
		{CategoryQuietObserver, "🧘"},
		{CategoryActionDriver, "⚡"},
		{CategoryImaginativeDreamer, "🎨"},
		{CategorySocialConnector, "🤝"},
		{0, DefaultEmoji},
		{99, DefaultEmoji},
		{-1, DefaultEmoji},
	}

	for _, tt := range tests {
		if got := EmojiFor(tt.id); got != tt.expected {
			t.Errorf("EmojiFor(%d): expected %q, got %q", tt.id, tt.expected, got)
		}
	}
}

func TestLabelFor(t *testing.T) {
	if got := LabelFor(CategoryActionDriver); got != "The Action Driver" {
		t.Errorf("expected The Action Driver, got %q", got)
	}
	if got := LabelFor(99); got != "Type 99" {
		t.Errorf("expected Type 99, got %q", got)
	}
}

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		id       int
		expected BadgeVariant
	}{
		{CategoryQuietObserver, BadgeQuiet},
		{CategoryActionDriver, BadgeAction},
		{CategoryImaginativeDreamer, BadgeImaginative},
		{CategorySocialConnector, BadgeSocial},
		{7, BadgeNone},
	}

	for _, tt := range tests {
		if got := BadgeFor(tt.id); got != tt.expected {
			t.Errorf("BadgeFor(%d): expected %q, got %q", tt.id, tt.expected, got)
		}
	}
}

func TestCategories_UniqueIDs(t *testing.T) {
	seen := make(map[int]bool)
	for _, c := range Categories {
		if seen[c.ID] {
			t.Fatalf("duplicate category id %d", c.ID)
		}
		seen[c.ID] = true
		if !IsKnownCategory(c.ID) {
			t.Errorf("category %d should be known", c.ID)
		}
		if c.Emoji == "" || c.Name == "" || c.Color == "" {
			t.Errorf("category %d has empty display fields", c.ID)
		}
	}
	if IsKnownCategory(5) {
		t.Error("category 5 should not be known")
	}
}

func TestCategoryFor(t *testing.T) {
	for _, want := range Categories {
		got, ok := CategoryFor(want.ID)
		if !ok || got != want {
			t.Errorf("CategoryFor(%d) = %+v, %v; want %+v", want.ID, got, ok, want)
		}
		if EmojiFor(want.ID) != want.Emoji || LabelFor(want.ID) != want.Name || !IsKnownCategory(want.ID) {
			t.Errorf("lookups for %d disagree with CategoryFor", want.ID)
		}
	}

	if _, ok := CategoryFor(0); ok {
		t.Error("CategoryFor(0) should report unknown")
	}
	if EmojiFor(7) != DefaultEmoji || LabelFor(7) != "Type 7" || IsKnownCategory(7) {
		t.Error("unknown id should fall back")
	}
}

func TestCategories_HexColors(t *testing.T) {
	for _, c := range Categories {
		if len(c.Color) != 7 || c.Color[0] != '#' {
			t.Errorf("category %d color = %q, want #rrggbb", c.ID, c.Color)
		}
	}
}
