package classify

import "strings"

// prefixes that models commonly prepend despite instructions.
var responsePrefixes = []string{
	"category:",
	"categorie:",
	"answer:",
	"antwoord:",
}

// NormalizeResponse strips the decoration LLMs tend to add around a category
// answer: surrounding whitespace, quotes, list markers, markdown emphasis,
// recognized prefixes and a trailing period. It returns the bare candidate
// key, possibly empty.
func NormalizeResponse(raw string) string {
	// A multi-line answer's first non-empty line is the candidate.
	var line string
	for _, l := range strings.Split(raw, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "-*•")
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	for _, prefix := range responsePrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
			break
		}
	}

	// Quotes, emphasis and a trailing period can nest in any order.
	for {
		trimmed := strings.Trim(s, "\"'`* ")
		trimmed = strings.TrimSuffix(trimmed, ".")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	return strings.TrimSpace(s)
}
