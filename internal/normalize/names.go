package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeHeader trims a column header, strips a UTF-8 BOM, lowercases it
// and turns inner whitespace runs into underscores.
// "Date Start" → "date_start"
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return multiSpace.ReplaceAllString(h, "_")
}
