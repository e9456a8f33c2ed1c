// Package sanitize turns arbitrary text into filesystem-safe names and paths.
package sanitize

import (
	"strings"
	"unicode"
)

const (
	// MaxSegmentLength is the maximum length of a single sanitized name segment.
	MaxSegmentLength = 100

	// PlaceholderSegment is returned when input sanitizes to nothing.
	PlaceholderSegment = "document"

	// DefaultPathLabel is returned when a relative path sanitizes to nothing.
	DefaultPathLabel = "Ongesorteerd"
)

// reservedChars are characters invalid in file names on at least one
// supported platform.
const reservedChars = `<>:"/\|?*`

// Segment sanitizes a single filesystem name segment. The result is never
// empty, never contains a path separator or control character, and never ends
// in a separator or dot.
func Segment(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	prevUnderscore := false
	for _, r := range text {
		switch {
		case unicode.IsControl(r) || r == unicode.ReplacementChar:
			// drop
		case strings.ContainsRune(reservedChars, r):
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		case unicode.IsSpace(r) || r == '_':
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
		default:
			b.WriteRune(r)
			prevUnderscore = false
		}
	}

	s := strings.Trim(b.String(), "_. ")

	if len([]rune(s)) > MaxSegmentLength {
		s = string([]rune(s)[:MaxSegmentLength])
		s = strings.Trim(s, "_. ")
	}

	if s == "" {
		return PlaceholderSegment
	}
	return s
}

// RelativePath sanitizes a relative folder path. Each segment is sanitized
// independently; segments that reduce to the placeholder are discarded.
// The result uses forward slashes and is never empty.
func RelativePath(text string) string {
	normalized := strings.ReplaceAll(text, `\`, "/")

	var segments []string
	for _, raw := range strings.Split(normalized, "/") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		seg := Segment(raw)
		if seg == PlaceholderSegment {
			continue
		}
		segments = append(segments, seg)
	}

	if len(segments) == 0 {
		return DefaultPathLabel
	}
	return strings.Join(segments, "/")
}
