package analysis

import (
	"regexp"
	"strings"
)

var (
	boldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	citationRe = regexp.MustCompile(`\[\d+\]`)
)

// CleanText strips markdown bold markers (**text**) and bracketed citation
// markers ([n]) from model output, then trims whitespace. Idempotent.
func CleanText(s string) string {
	s = boldRe.ReplaceAllString(s, "$1")
	s = citationRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
