package wheel

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category ID is not part of the set.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one life area rated on the wheel.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"` // hex, e.g. "#ec4899"
}

// CategorySet is a fixed, ordered collection of categories.
// The order is the display order of the wheel and of every report.
type CategorySet struct {
	items []Category
	index map[string]int
}

// NewCategorySet builds a set from the given categories. IDs must be
// non-empty and unique.
func NewCategorySet(cats ...Category) (CategorySet, error) {
	if len(cats) == 0 {
		return CategorySet{}, errors.New("category set must not be empty")
	}
	set := CategorySet{
		items: make([]Category, len(cats)),
		index: make(map[string]int, len(cats)),
	}
	for i, c := range cats {
		if c.ID == "" {
			return CategorySet{}, fmt.Errorf("category %d: empty ID", i)
		}
		if _, dup := set.index[c.ID]; dup {
			return CategorySet{}, fmt.Errorf("duplicate category %q", c.ID)
		}
		set.items[i] = c
		set.index[c.ID] = i
	}
	return set, nil
}

var defaultCategories = []Category{
	{ID: "spirituality", Name: "Spirituality", Color: "#ec4899"},
	{ID: "family", Name: "Family", Color: "#fbcfe8"},
	{ID: "personal", Name: "Personal Growth", Color: "#d8b4fe"},
	{ID: "social", Name: "Social", Color: "#6b7280"},
	{ID: "health", Name: "Health", Color: "#facc15"},
	{ID: "work", Name: "Work & Career", Color: "#2563eb"},
}

// DefaultCategories returns the six reference categories.
func DefaultCategories() CategorySet {
	set, err := NewCategorySet(defaultCategories...)
	if err != nil {
		panic(err)
	}
	return set
}

// All returns a copy of the categories in display order.
func (s CategorySet) All() []Category {
	out := make([]Category, len(s.items))
	copy(out, s.items)
	return out
}

// IDs returns the category IDs in display order.
func (s CategorySet) IDs() []string {
	out := make([]string, len(s.items))
	for i, c := range s.items {
		out[i] = c.ID
	}
	return out
}

// Len returns the number of categories.
func (s CategorySet) Len() int {
	return len(s.items)
}

// At returns the category at display position i.
func (s CategorySet) At(i int) Category {
	return s.items[i]
}

// Lookup finds a category by ID.
func (s CategorySet) Lookup(id string) (Category, bool) {
	i, ok := s.index[id]
	if !ok {
		return Category{}, false
	}
	return s.items[i], true
}

// IndexOf returns the display position of id, or -1.
func (s CategorySet) IndexOf(id string) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Contains reports whether id belongs to the set.
func (s CategorySet) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}
