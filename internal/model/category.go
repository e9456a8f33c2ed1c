// Package model defines the core domain types for document organization.
package model

// Category maps a stable category key to a destination folder path relative
// to the destination root.
type Category struct {
	Key  string
	Path string
}

// CategoryMap is an ordered collection of categories. Insertion order is
// preserved so prompts list categories deterministically. Exactly one key is
// designated the fallback category, which must be present in the map.
type CategoryMap struct {
	categories []Category
	byKey      map[string]int
	fallback   string
}

// NewCategoryMap builds a category map from an ordered category list and a
// fallback key. The fallback key must name one of the entries.
func NewCategoryMap(categories []Category, fallbackKey string) (*CategoryMap, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCategoryMap
	}

	byKey := make(map[string]int, len(categories))
	ordered := make([]Category, 0, len(categories))
	for _, cat := range categories {
		if _, dup := byKey[cat.Key]; dup {
			continue
		}
		byKey[cat.Key] = len(ordered)
		ordered = append(ordered, cat)
	}

	if _, ok := byKey[fallbackKey]; !ok {
		return nil, ErrFallbackNotInMap
	}

	return &CategoryMap{
		categories: ordered,
		byKey:      byKey,
		fallback:   fallbackKey,
	}, nil
}

// Keys returns all category keys in insertion order.
func (m *CategoryMap) Keys() []string {
	keys := make([]string, len(m.categories))
	for i, cat := range m.categories {
		keys[i] = cat.Key
	}
	return keys
}

// Categories returns all categories in insertion order.
func (m *CategoryMap) Categories() []Category {
	out := make([]Category, len(m.categories))
	copy(out, m.categories)
	return out
}

// Path returns the relative folder path for a key, or false if the key is
// not in the map.
func (m *CategoryMap) Path(key string) (string, bool) {
	idx, ok := m.byKey[key]
	if !ok {
		return "", false
	}
	return m.categories[idx].Path, true
}

// Contains reports whether key is present in the map.
func (m *CategoryMap) Contains(key string) bool {
	_, ok := m.byKey[key]
	return ok
}

// Fallback returns the fallback category key.
func (m *CategoryMap) Fallback() string {
	return m.fallback
}

// FallbackPath returns the folder path of the fallback category.
func (m *CategoryMap) FallbackPath() string {
	path, _ := m.Path(m.fallback)
	return path
}

// Len returns the number of categories in the map.
func (m *CategoryMap) Len() int {
	return len(m.categories)
}
