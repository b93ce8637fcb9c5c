package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlphaNumRegex = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)
var multiSpaceRegex = regexp.MustCompile(` +`)

// Generate builds a URL-friendly slug from a display name and record ID.
// Example: "Tasty Snacks Co." + 42 -> "tasty-snacks-co-42"
func Generate(name string, id int64) string {
	s := nonAlphaNumRegex.ReplaceAllString(name, "")
	s = strings.TrimSpace(s)
	s = multiSpaceRegex.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " ", "-")
	s = fmt.Sprintf("%s-%d", s, id)
	return strings.ToLower(s)
}
