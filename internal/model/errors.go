package model

import "errors"

var (
	// ErrEmptyCategoryMap indicates a category map with no entries.
	ErrEmptyCategoryMap = errors.New("category map is empty")
	// ErrFallbackNotInMap indicates the fallback key is missing from the map.
	ErrFallbackNotInMap = errors.New("fallback category not present in category map")
)
