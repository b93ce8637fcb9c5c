package validation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// NormalizeURL trims the input and prepends https:// when no http(s) scheme
// is present. Already-prefixed URLs pass through unchanged, so normalizing
// twice is a no-op and a double prefix can never be produced.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// TitleCase trims and title-cases a custom category label ("craft beer" ->
// "Craft Beer"). Applied before de-duplication so stored labels have a
// canonical presentation form.
func TitleCase(text string) string {
	return titleCaser.String(strings.TrimSpace(text))
}

// EqualFold reports whether two labels are the same ignoring case, used for
// duplicate detection across built-in and custom entries.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
