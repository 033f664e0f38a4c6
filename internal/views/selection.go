package views

import (
	"slices"
	"strconv"
	"strings"

	"github.com/HammerMeetNail/quizdash/internal/models"
)

const AllTypesLabel = "All Types"

// Option is one entry in the category multi-select.
type Option struct {
	ID    int
	Label string
}

// CategoryOptions lists the known categories as multi-select options.
func CategoryOptions() []Option {
	opts := make([]Option, len(models.Categories))
	for i, c := range models.Categories {
		opts[i] = Option{ID: c.ID, Label: c.Name}
	}
	return opts
}

// Selection is the set of selected category ids in the order they were
// added. The zero value selects all categories. Methods return new values.
type Selection struct {
	ids []int
}

func NewSelection(ids ...int) Selection {
	var s Selection
	for _, id := range ids {
		if !s.Contains(id) {
			s.ids = append(s.ids, id)
		}
	}
	return s
}

// ParseSelection reads repeated "type" query values. Non-numeric values and
// duplicates are dropped.
func ParseSelection(values []string) Selection {
	ids := make([]int, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			ids = append(ids, id)
		}
	}
	return NewSelection(ids...)
}

func (s Selection) Contains(id int) bool {
	return slices.Contains(s.ids, id)
}

// IsAll reports whether no category is selected, meaning no filter.
func (s Selection) IsAll() bool {
	return len(s.ids) == 0
}

// IDs returns a copy of the selected ids.
func (s Selection) IDs() []int {
	return slices.Clone(s.ids)
}

// Toggle adds id when absent and removes it when present.
func (s Selection) Toggle(id int) Selection {
	if s.Contains(id) {
		return Selection{ids: slices.DeleteFunc(s.IDs(), func(v int) bool { return v == id })}
	}
	return Selection{ids: append(s.IDs(), id)}
}

// Clear selects all categories.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Label is the control caption: placeholder when all are selected, else the
// selected option labels in option order.
func (s Selection) Label(options []Option, placeholder string) string {
	if s.IsAll() {
		return placeholder
	}
	labels := make([]string, 0, len(s.ids))
	for _, o := range options {
		if s.Contains(o.ID) {
			labels = append(labels, o.Label)
		}
	}
	return strings.Join(labels, ", ")
}
